package inventory

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pondside/AnglerBot_Go/internal/domain"
)

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) AdjustCoins(ctx context.Context, userID string, delta int) error {
	args := m.Called(ctx, userID, delta)
	return args.Error(0)
}

// MockInventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) AddStackable(ctx context.Context, kind domain.StackableKind, userID string, templateID, delta int) error {
	args := m.Called(ctx, kind, userID, templateID, delta)
	return args.Error(0)
}

func (m *MockInventoryRepository) BatchAddStackable(ctx context.Context, kind domain.StackableKind, userID string, deltas []domain.StackableDelta) error {
	args := m.Called(ctx, kind, userID, deltas)
	return args.Error(0)
}

func (m *MockInventoryRepository) ListStackable(ctx context.Context, kind domain.StackableKind, userID string) ([]domain.StackableEntry, error) {
	args := m.Called(ctx, kind, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StackableEntry), args.Error(1)
}

func (m *MockInventoryRepository) StackableValue(ctx context.Context, kind domain.StackableKind, userID string, rarity *int) (int, error) {
	args := m.Called(ctx, kind, userID, rarity)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryRepository) SellAllButOne(ctx context.Context, kind domain.StackableKind, userID string) (int, error) {
	args := m.Called(ctx, kind, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryRepository) ClearStackable(ctx context.Context, kind domain.StackableKind, userID string, rarity *int) error {
	args := m.Called(ctx, kind, userID, rarity)
	return args.Error(0)
}

func (m *MockInventoryRepository) AddEquipmentInstance(ctx context.Context, userID string, category domain.EquipmentCategory, attrs domain.EquipmentAttrs) (int, error) {
	args := m.Called(ctx, userID, category, attrs)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryRepository) BatchAddEquipmentInstances(ctx context.Context, userID string, category domain.EquipmentCategory, attrs []domain.EquipmentAttrs) ([]int, error) {
	args := m.Called(ctx, userID, category, attrs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockInventoryRepository) SetEquipped(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID int) error {
	args := m.Called(ctx, userID, category, instanceID)
	return args.Error(0)
}

func (m *MockInventoryRepository) DeleteEquipmentInstance(ctx context.Context, category domain.EquipmentCategory, instanceID int) error {
	args := m.Called(ctx, category, instanceID)
	return args.Error(0)
}

func (m *MockInventoryRepository) GetEquippedInstance(ctx context.Context, userID string, category domain.EquipmentCategory) (*domain.EquipmentInstance, error) {
	args := m.Called(ctx, userID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EquipmentInstance), args.Error(1)
}

func (m *MockInventoryRepository) ListInstances(ctx context.Context, userID string, category domain.EquipmentCategory) ([]domain.EquipmentInstance, error) {
	args := m.Called(ctx, userID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EquipmentInstance), args.Error(1)
}

func (m *MockInventoryRepository) GetInstanceByID(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID int) (*domain.EquipmentInstance, error) {
	args := m.Called(ctx, userID, category, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EquipmentInstance), args.Error(1)
}

func (m *MockInventoryRepository) UpdateInstance(ctx context.Context, instance domain.EquipmentInstance) error {
	args := m.Called(ctx, instance)
	return args.Error(0)
}

func (m *MockInventoryRepository) ClearUnequippedInstances(ctx context.Context, userID string, category domain.EquipmentCategory, rarityBelow int) (int, error) {
	args := m.Called(ctx, userID, category, rarityBelow)
	return args.Int(0), args.Error(1)
}

// MockItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) GetRodTemplate(ctx context.Context, id int) (*domain.RodTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RodTemplate), args.Error(1)
}

func (m *MockItemRepository) GetAccessoryTemplate(ctx context.Context, id int) (*domain.AccessoryTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessoryTemplate), args.Error(1)
}

func (m *MockItemRepository) GetBaitTemplate(ctx context.Context, id int) (*domain.BaitTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BaitTemplate), args.Error(1)
}

func (m *MockItemRepository) GetFishTemplate(ctx context.Context, id int) (*domain.FishTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FishTemplate), args.Error(1)
}

func (m *MockItemRepository) GetTitleTemplate(ctx context.Context, id int) (*domain.TitleTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TitleTemplate), args.Error(1)
}

// MockAchievementRepository
type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) GrantTitle(ctx context.Context, userID string, titleID int) error {
	args := m.Called(ctx, userID, titleID)
	return args.Error(0)
}

func (m *MockAchievementRepository) GetUserTitles(ctx context.Context, userID string) ([]int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}
