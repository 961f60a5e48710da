package gacha

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pondside/AnglerBot_Go/internal/domain"
)

var errFakeStore = errors.New("fake store failure")

// fakeUserRepo is a stateful in-memory user directory. failOnCall makes
// the Nth AdjustCoins call fail, which is how tests force a sub-batch
// settlement failure at a precise point.
type fakeUserRepo struct {
	users       map[string]*domain.User
	adjustCalls int
	failOnCall  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, user domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	copied := user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) AdjustCoins(ctx context.Context, userID string, delta int) error {
	f.adjustCalls++
	if f.failOnCall > 0 && f.adjustCalls == f.failOnCall {
		return errFakeStore
	}
	u, ok := f.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if u.Coins+delta < 0 {
		return domain.ErrInsufficientFunds
	}
	u.Coins += delta
	return nil
}

// fakeInventoryRepo records grants; only the methods the gacha service
// touches carry real behavior.
type fakeInventoryRepo struct {
	nextInstanceID    int
	instances         map[domain.EquipmentCategory][]domain.EquipmentInstance
	stackables        map[domain.StackableKind]map[int]int
	failBatchEquip    bool
	partialBatchEquip bool
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{
		nextInstanceID: 1,
		instances:      make(map[domain.EquipmentCategory][]domain.EquipmentInstance),
		stackables:     make(map[domain.StackableKind]map[int]int),
	}
}

func (f *fakeInventoryRepo) AddStackable(ctx context.Context, kind domain.StackableKind, userID string, templateID, delta int) error {
	if f.stackables[kind] == nil {
		f.stackables[kind] = make(map[int]int)
	}
	f.stackables[kind][templateID] += delta
	if f.stackables[kind][templateID] < 0 {
		f.stackables[kind][templateID] = 0
	}
	return nil
}

func (f *fakeInventoryRepo) BatchAddStackable(ctx context.Context, kind domain.StackableKind, userID string, deltas []domain.StackableDelta) error {
	for _, d := range deltas {
		if err := f.AddStackable(ctx, kind, userID, d.TemplateID, d.Delta); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeInventoryRepo) ListStackable(ctx context.Context, kind domain.StackableKind, userID string) ([]domain.StackableEntry, error) {
	entries := []domain.StackableEntry{}
	for templateID, qty := range f.stackables[kind] {
		if qty > 0 {
			entries = append(entries, domain.StackableEntry{UserID: userID, TemplateID: templateID, Quantity: qty})
		}
	}
	return entries, nil
}

func (f *fakeInventoryRepo) StackableValue(ctx context.Context, kind domain.StackableKind, userID string, rarity *int) (int, error) {
	return 0, nil
}

func (f *fakeInventoryRepo) SellAllButOne(ctx context.Context, kind domain.StackableKind, userID string) (int, error) {
	return 0, nil
}

func (f *fakeInventoryRepo) ClearStackable(ctx context.Context, kind domain.StackableKind, userID string, rarity *int) error {
	return nil
}

func (f *fakeInventoryRepo) AddEquipmentInstance(ctx context.Context, userID string, category domain.EquipmentCategory, attrs domain.EquipmentAttrs) (int, error) {
	id := f.nextInstanceID
	f.nextInstanceID++
	f.instances[category] = append(f.instances[category], domain.EquipmentInstance{
		InstanceID:  id,
		UserID:      userID,
		TemplateID:  attrs.TemplateID,
		Category:    category,
		RefineLevel: attrs.RefineLevel,
		Durability:  attrs.Durability,
	})
	return id, nil
}

func (f *fakeInventoryRepo) BatchAddEquipmentInstances(ctx context.Context, userID string, category domain.EquipmentCategory, attrs []domain.EquipmentAttrs) ([]int, error) {
	if f.failBatchEquip {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreTransient, errFakeStore)
	}
	if f.partialBatchEquip && len(attrs) > 1 {
		// Simulate the sequential fallback dropping the last item.
		ids := make([]int, 0, len(attrs)-1)
		for _, a := range attrs[:len(attrs)-1] {
			id, _ := f.AddEquipmentInstance(ctx, userID, category, a)
			ids = append(ids, id)
		}
		return ids, &domain.BatchPartialError{Succeeded: len(ids), Attempted: len(attrs), Cause: errFakeStore}
	}
	ids := make([]int, 0, len(attrs))
	for _, a := range attrs {
		id, err := f.AddEquipmentInstance(ctx, userID, category, a)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeInventoryRepo) SetEquipped(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID int) error {
	return nil
}

func (f *fakeInventoryRepo) DeleteEquipmentInstance(ctx context.Context, category domain.EquipmentCategory, instanceID int) error {
	return nil
}

func (f *fakeInventoryRepo) GetEquippedInstance(ctx context.Context, userID string, category domain.EquipmentCategory) (*domain.EquipmentInstance, error) {
	return nil, nil
}

func (f *fakeInventoryRepo) ListInstances(ctx context.Context, userID string, category domain.EquipmentCategory) ([]domain.EquipmentInstance, error) {
	return f.instances[category], nil
}

func (f *fakeInventoryRepo) GetInstanceByID(ctx context.Context, userID string, category domain.EquipmentCategory, instanceID int) (*domain.EquipmentInstance, error) {
	return nil, nil
}

func (f *fakeInventoryRepo) UpdateInstance(ctx context.Context, instance domain.EquipmentInstance) error {
	return nil
}

func (f *fakeInventoryRepo) ClearUnequippedInstances(ctx context.Context, userID string, category domain.EquipmentCategory, rarityBelow int) (int, error) {
	return 0, nil
}

// fakeItemRepo serves templates from in-memory maps.
type fakeItemRepo struct {
	rods        map[int]*domain.RodTemplate
	accessories map[int]*domain.AccessoryTemplate
	baits       map[int]*domain.BaitTemplate
	fish        map[int]*domain.FishTemplate
	titles      map[int]*domain.TitleTemplate
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{
		rods:        make(map[int]*domain.RodTemplate),
		accessories: make(map[int]*domain.AccessoryTemplate),
		baits:       make(map[int]*domain.BaitTemplate),
		fish:        make(map[int]*domain.FishTemplate),
		titles:      make(map[int]*domain.TitleTemplate),
	}
}

func (f *fakeItemRepo) GetRodTemplate(ctx context.Context, id int) (*domain.RodTemplate, error) {
	return f.rods[id], nil
}

func (f *fakeItemRepo) GetAccessoryTemplate(ctx context.Context, id int) (*domain.AccessoryTemplate, error) {
	return f.accessories[id], nil
}

func (f *fakeItemRepo) GetBaitTemplate(ctx context.Context, id int) (*domain.BaitTemplate, error) {
	return f.baits[id], nil
}

func (f *fakeItemRepo) GetFishTemplate(ctx context.Context, id int) (*domain.FishTemplate, error) {
	return f.fish[id], nil
}

func (f *fakeItemRepo) GetTitleTemplate(ctx context.Context, id int) (*domain.TitleTemplate, error) {
	return f.titles[id], nil
}

// fakePoolRepo serves pools from a map.
type fakePoolRepo struct {
	pools map[int]*domain.GachaPool
}

func newFakePoolRepo() *fakePoolRepo {
	return &fakePoolRepo{pools: make(map[int]*domain.GachaPool)}
}

func (f *fakePoolRepo) GetPoolByID(ctx context.Context, poolID int) (*domain.GachaPool, error) {
	return f.pools[poolID], nil
}

func (f *fakePoolRepo) ListAllPools(ctx context.Context) ([]domain.GachaPool, error) {
	pools := []domain.GachaPool{}
	for _, p := range f.pools {
		pools = append(pools, *p)
	}
	return pools, nil
}

// fakeAuditRepo collects appended records.
type fakeAuditRepo struct {
	records []domain.GachaRecord
}

func (f *fakeAuditRepo) AppendGachaRecord(ctx context.Context, record domain.GachaRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeAuditRepo) AppendGachaRecords(ctx context.Context, records []domain.GachaRecord) error {
	f.records = append(f.records, records...)
	return nil
}

func (f *fakeAuditRepo) GetGachaRecords(ctx context.Context, userID string, limit int) ([]domain.GachaRecord, error) {
	out := []domain.GachaRecord{}
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		if f.records[i].UserID == userID {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

// fakeAchievementRepo tracks granted titles per user.
type fakeAchievementRepo struct {
	grants     map[string]map[int]bool
	grantCalls int
}

func newFakeAchievementRepo() *fakeAchievementRepo {
	return &fakeAchievementRepo{grants: make(map[string]map[int]bool)}
}

func (f *fakeAchievementRepo) GrantTitle(ctx context.Context, userID string, titleID int) error {
	f.grantCalls++
	if f.grants[userID] == nil {
		f.grants[userID] = make(map[int]bool)
	}
	f.grants[userID][titleID] = true
	return nil
}

func (f *fakeAchievementRepo) GetUserTitles(ctx context.Context, userID string) ([]int, error) {
	titles := []int{}
	for id := range f.grants[userID] {
		titles = append(titles, id)
	}
	return titles, nil
}

// sequenceRnd returns a rnd func yielding the given values in order,
// wrapping around at the end.
func sequenceRnd(values ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := values[i%len(values)]
		i++
		return v
	}
}

// fixedNow returns a now func pinned to a constant instant.
func fixedNow() func() time.Time {
	instant := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return instant }
}
