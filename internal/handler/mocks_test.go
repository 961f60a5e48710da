package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pondside/AnglerBot_Go/internal/domain"
)

// MockGachaService is a mock implementation of gacha.Service
type MockGachaService struct {
	mock.Mock
}

func (m *MockGachaService) Draw(ctx context.Context, userID string, poolID, count int) (*domain.DrawResult, error) {
	args := m.Called(ctx, userID, poolID, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DrawResult), args.Error(1)
}

func (m *MockGachaService) DrawOversized(ctx context.Context, userID string, poolID, count int) (*domain.OversizedDrawResult, error) {
	args := m.Called(ctx, userID, poolID, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OversizedDrawResult), args.Error(1)
}

func (m *MockGachaService) ListPools(ctx context.Context) ([]domain.GachaPool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GachaPool), args.Error(1)
}

func (m *MockGachaService) GetPoolProbabilities(ctx context.Context, poolID int) ([]domain.PoolItemProbability, error) {
	args := m.Called(ctx, poolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PoolItemProbability), args.Error(1)
}

func (m *MockGachaService) GetHistory(ctx context.Context, userID string, limit int) ([]domain.GachaRecord, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GachaRecord), args.Error(1)
}

// MockInventoryService is a mock implementation of inventory.Service
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) GetInventory(ctx context.Context, userID string) (*domain.InventorySummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventorySummary), args.Error(1)
}

func (m *MockInventoryService) Equip(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID int) error {
	args := m.Called(ctx, userID, category, instanceID)
	return args.Error(0)
}

func (m *MockInventoryService) SellAllFishKeepOne(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryService) StackableValue(ctx context.Context, userID string, kind domain.StackableKind, rarity *int) (int, error) {
	args := m.Called(ctx, userID, kind, rarity)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryService) InstanceValue(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID int) (int, error) {
	args := m.Called(ctx, userID, category, instanceID)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryService) SellInstance(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID int) (int, error) {
	args := m.Called(ctx, userID, category, instanceID)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryService) RefineInstance(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID int) (*domain.EquipmentInstance, error) {
	args := m.Called(ctx, userID, category, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EquipmentInstance), args.Error(1)
}

func (m *MockInventoryService) ConsumeDurability(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID, amount int) (*domain.EquipmentInstance, error) {
	args := m.Called(ctx, userID, category, instanceID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EquipmentInstance), args.Error(1)
}

func (m *MockInventoryService) ClearLowRarityEquipment(ctx context.Context, userID string, category domain.EquipmentCategory, rarityBelow int) (int, error) {
	args := m.Called(ctx, userID, category, rarityBelow)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryService) ClearStackables(ctx context.Context, userID string, kind domain.StackableKind, rarity *int) error {
	args := m.Called(ctx, userID, kind, rarity)
	return args.Error(0)
}

func (m *MockInventoryService) GetUserTitles(ctx context.Context, userID string) ([]domain.TitleTemplate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TitleTemplate), args.Error(1)
}
