package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pondside/AnglerBot_Go/internal/domain"
)

const testUserID = "6a9e8f10-0000-4000-8000-000000000002"

func knownUser() *domain.User {
	return &domain.User{ID: testUserID, Nickname: "Alice", Coins: 100}
}

func TestEquip(t *testing.T) {
	users := new(MockUserRepository)
	inv := new(MockInventoryRepository)
	svc := NewService(users, inv, new(MockItemRepository), new(MockAchievementRepository))

	users.On("GetUserByID", mock.Anything, testUserID).Return(knownUser(), nil)
	inv.On("GetInstanceByID", mock.Anything, testUserID, domain.EquipmentRod, 3).
		Return(&domain.EquipmentInstance{InstanceID: 3, UserID: testUserID, Category: domain.EquipmentRod, RefineLevel: 1}, nil)
	inv.On("SetEquipped", mock.Anything, testUserID, domain.EquipmentRod, 3).Return(nil)

	err := svc.Equip(context.Background(), testUserID, domain.EquipmentRod, 3)
	require.NoError(t, err)
	inv.AssertExpectations(t)
}

func TestEquip_UnknownInstance(t *testing.T) {
	users := new(MockUserRepository)
	inv := new(MockInventoryRepository)
	svc := NewService(users, inv, new(MockItemRepository), new(MockAchievementRepository))

	users.On("GetUserByID", mock.Anything, testUserID).Return(knownUser(), nil)
	inv.On("GetInstanceByID", mock.Anything, testUserID, domain.EquipmentRod, 99).Return(nil, nil)

	err := svc.Equip(context.Background(), testUserID, domain.EquipmentRod, 99)
	assert.True(t, errors.Is(err, domain.ErrInstanceNotFound))
	inv.AssertNotCalled(t, "SetEquipped", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSellAllFishKeepOne_CreditsProceeds(t *testing.T) {
	users := new(MockUserRepository)
	inv := new(MockInventoryRepository)
	svc := NewService(users, inv, new(MockItemRepository), new(MockAchievementRepository))

	users.On("GetUserByID", mock.Anything, testUserID).Return(knownUser(), nil)
	inv.On("SellAllButOne", mock.Anything, domain.StackableFish, testUserID).Return(40, nil)
	users.On("AdjustCoins", mock.Anything, testUserID, 40).Return(nil)

	value, err := svc.SellAllFishKeepOne(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, 40, value)
	users.AssertExpectations(t)
}

func TestSellAllFishKeepOne_NothingToSell(t *testing.T) {
	users := new(MockUserRepository)
	inv := new(MockInventoryRepository)
	svc := NewService(users, inv, new(MockItemRepository), new(MockAchievementRepository))

	users.On("GetUserByID", mock.Anything, testUserID).Return(knownUser(), nil)
	inv.On("SellAllButOne", mock.Anything, domain.StackableFish, testUserID).Return(0, nil)

	value, err := svc.SellAllFishKeepOne(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Zero(t, value)
	users.AssertNotCalled(t, "AdjustCoins", mock.Anything, mock.Anything, mock.Anything)
}

func TestSellAllFishKeepOne_CreditFailureSurfaced(t *testing.T) {
	users := new(MockUserRepository)
	inv := new(MockInventoryRepository)
	svc := NewService(users, inv, new(MockItemRepository), new(MockAchievementRepository))

	users.On("GetUserByID", mock.Anything, testUserID).Return(knownUser(), nil)
	inv.On("SellAllButOne", mock.Anything, domain.StackableFish, testUserID).Return(40, nil)
	users.On("AdjustCoins", mock.Anything, testUserID, 40).Return(domain.ErrStoreTransient)

	_, err := svc.SellAllFishKeepOne(context.Background(), testUserID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credit failed")
}

func TestInstanceValue_RefineCap(t *testing.T) {
	tests := []struct {
		name        string
		refineLevel int
		want        int
	}{
		{name: "level 1 is base value", refineLevel: 1, want: 150},
		{name: "level 3 adds 40 percent", refineLevel: 3, want: 210},
		{name: "level 5 adds 80 percent", refineLevel: 5, want: 270},
		{name: "level 9 is capped at level 5 scaling", refineLevel: 9, want: 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			inv := new(MockInventoryRepository)
			items := new(MockItemRepository)
			svc := NewService(users, inv, items, new(MockAchievementRepository))

			inv.On("GetInstanceByID", mock.Anything, testUserID, domain.EquipmentRod, 1).
				Return(&domain.EquipmentInstance{
					InstanceID: 1, UserID: testUserID, TemplateID: 10,
					Category: domain.EquipmentRod, RefineLevel: tt.refineLevel,
				}, nil)
			items.On("GetRodTemplate", mock.Anything, 10).
				Return(&domain.RodTemplate{ID: 10, Name: "Willow Rod", Rarity: 2, BaseValue: 150}, nil)

			value, err := svc.InstanceValue(context.Background(), testUserID, domain.EquipmentRod, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, value)
		})
	}
}

func TestSellInstance_CreditsRefinedValue(t *testing.T) {
	users := new(MockUserRepository)
	inv := new(MockInventoryRepository)
	items := new(MockItemRepository)
	svc := NewService(users, inv, items, new(MockAchievementRepository))

	inv.On("GetInstanceByID", mock.Anything, testUserID, domain.EquipmentRod, 2).
		Return(&domain.EquipmentInstance{
			InstanceID: 2, UserID: testUserID, TemplateID: 10,
			Category: domain.EquipmentRod, RefineLevel: 3,
		}, nil)
	items.On("GetRodTemplate", mock.Anything, 10).
		Return(&domain.RodTemplate{ID: 10, Name: "Willow Rod", Rarity: 2, BaseValue: 150}, nil)
	inv.On("DeleteEquipmentInstance", mock.Anything, domain.EquipmentRod, 2).Return(nil)
	users.On("AdjustCoins", mock.Anything, testUserID, 210).Return(nil)

	value, err := svc.SellInstance(context.Background(), testUserID, domain.EquipmentRod, 2)
	require.NoError(t, err)
	assert.Equal(t, 210, value)
	inv.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestSellInstance_RefusesEquipped(t *testing.T) {
	users := new(MockUserRepository)
	inv := new(MockInventoryRepository)
	svc := NewService(users, inv, new(MockItemRepository), new(MockAchievementRepository))

	inv.On("GetInstanceByID", mock.Anything, testUserID, domain.EquipmentRod, 2).
		Return(&domain.EquipmentInstance{
			InstanceID: 2, UserID: testUserID, TemplateID: 10,
			Category: domain.EquipmentRod, RefineLevel: 1, Equipped: true,
		}, nil)

	_, err := svc.SellInstance(context.Background(), testUserID, domain.EquipmentRod, 2)
	assert.True(t, errors.Is(err, domain.ErrInstanceEquipped))
	inv.AssertNotCalled(t, "DeleteEquipmentInstance", mock.Anything, mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "AdjustCoins", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefineInstance_Increments(t *testing.T) {
	users := new(MockUserRepository)
	inv := new(MockInventoryRepository)
	svc := NewService(users, inv, new(MockItemRepository), new(MockAchievementRepository))

	inv.On("GetInstanceByID", mock.Anything, testUserID, domain.EquipmentAccessory, 4).
		Return(&domain.EquipmentInstance{
			InstanceID: 4, UserID: testUserID, TemplateID: 2,
			Category: domain.EquipmentAccessory, RefineLevel: 2,
		}, nil)
	inv.On("UpdateInstance", mock.Anything, mock.MatchedBy(func(i domain.EquipmentInstance) bool {
		return i.InstanceID == 4 && i.RefineLevel == 3
	})).Return(nil)

	updated, err := svc.RefineInstance(context.Background(), testUserID, domain.EquipmentAccessory, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.RefineLevel)
	inv.AssertExpectations(t)
}

func TestConsumeDurability(t *testing.T) {
	t.Run("floors at zero", func(t *testing.T) {
		users := new(MockUserRepository)
		inv := new(MockInventoryRepository)
		svc := NewService(users, inv, new(MockItemRepository), new(MockAchievementRepository))

		durability := 3
		inv.On("GetInstanceByID", mock.Anything, testUserID, domain.EquipmentRod, 1).
			Return(&domain.EquipmentInstance{
				InstanceID: 1, UserID: testUserID, TemplateID: 10,
				Category: domain.EquipmentRod, RefineLevel: 1, Durability: &durability,
			}, nil)
		inv.On("UpdateInstance", mock.Anything, mock.MatchedBy(func(i domain.EquipmentInstance) bool {
			return i.Durability != nil && *i.Durability == 0
		})).Return(nil)

		updated, err := svc.ConsumeDurability(context.Background(), testUserID, domain.EquipmentRod, 1, 10)
		require.NoError(t, err)
		require.NotNil(t, updated.Durability)
		assert.Zero(t, *updated.Durability)
	})

	t.Run("unlimited durability passes through", func(t *testing.T) {
		users := new(MockUserRepository)
		inv := new(MockInventoryRepository)
		svc := NewService(users, inv, new(MockItemRepository), new(MockAchievementRepository))

		inv.On("GetInstanceByID", mock.Anything, testUserID, domain.EquipmentRod, 1).
			Return(&domain.EquipmentInstance{
				InstanceID: 1, UserID: testUserID, TemplateID: 10,
				Category: domain.EquipmentRod, RefineLevel: 1,
			}, nil)

		updated, err := svc.ConsumeDurability(context.Background(), testUserID, domain.EquipmentRod, 1, 10)
		require.NoError(t, err)
		assert.Nil(t, updated.Durability)
		inv.AssertNotCalled(t, "UpdateInstance", mock.Anything, mock.Anything)
	})

	t.Run("negative wear rejected", func(t *testing.T) {
		svc := NewService(new(MockUserRepository), new(MockInventoryRepository),
			new(MockItemRepository), new(MockAchievementRepository))

		_, err := svc.ConsumeDurability(context.Background(), testUserID, domain.EquipmentRod, 1, -1)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})
}

func TestClearLowRarityEquipment(t *testing.T) {
	users := new(MockUserRepository)
	inv := new(MockInventoryRepository)
	svc := NewService(users, inv, new(MockItemRepository), new(MockAchievementRepository))

	users.On("GetUserByID", mock.Anything, testUserID).Return(knownUser(), nil)
	inv.On("ClearUnequippedInstances", mock.Anything, testUserID, domain.EquipmentRod, 5).Return(7, nil)

	removed, err := svc.ClearLowRarityEquipment(context.Background(), testUserID, domain.EquipmentRod, 5)
	require.NoError(t, err)
	assert.Equal(t, 7, removed)
}

func TestGetInventory(t *testing.T) {
	users := new(MockUserRepository)
	inv := new(MockInventoryRepository)
	achievements := new(MockAchievementRepository)
	svc := NewService(users, inv, new(MockItemRepository), achievements)

	users.On("GetUserByID", mock.Anything, testUserID).Return(knownUser(), nil)
	inv.On("ListStackable", mock.Anything, domain.StackableFish, testUserID).
		Return([]domain.StackableEntry{{UserID: testUserID, TemplateID: 1, Quantity: 2}}, nil)
	inv.On("ListStackable", mock.Anything, domain.StackableBait, testUserID).
		Return([]domain.StackableEntry{}, nil)
	inv.On("ListInstances", mock.Anything, testUserID, domain.EquipmentRod).
		Return([]domain.EquipmentInstance{{InstanceID: 1}}, nil)
	inv.On("ListInstances", mock.Anything, testUserID, domain.EquipmentAccessory).
		Return([]domain.EquipmentInstance{}, nil)
	achievements.On("GetUserTitles", mock.Anything, testUserID).Return([]int{9}, nil)

	summary, err := svc.GetInventory(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Len(t, summary.Fish, 1)
	assert.Empty(t, summary.Bait)
	assert.Len(t, summary.Rods, 1)
	assert.Equal(t, []int{9}, summary.TitleIDs)
}

func TestGetUserTitles_SkipsOrphanedIDs(t *testing.T) {
	users := new(MockUserRepository)
	items := new(MockItemRepository)
	achievements := new(MockAchievementRepository)
	svc := NewService(users, new(MockInventoryRepository), items, achievements)

	users.On("GetUserByID", mock.Anything, testUserID).Return(knownUser(), nil)
	achievements.On("GetUserTitles", mock.Anything, testUserID).Return([]int{9, 13}, nil)
	items.On("GetTitleTemplate", mock.Anything, 9).
		Return(&domain.TitleTemplate{ID: 9, Name: "Master Angler"}, nil)
	items.On("GetTitleTemplate", mock.Anything, 13).Return(nil, nil)

	titles, err := svc.GetUserTitles(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, titles, 1)
	assert.Equal(t, "Master Angler", titles[0].Name)
}

func TestOperationsRequireKnownUser(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockInventoryRepository), new(MockItemRepository), new(MockAchievementRepository))

	users.On("GetUserByID", mock.Anything, "missing").Return(nil, nil)

	_, err := svc.GetInventory(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))

	_, err = svc.SellAllFishKeepOne(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))

	_, err = svc.StackableValue(context.Background(), "missing", domain.StackableFish, nil)
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}
