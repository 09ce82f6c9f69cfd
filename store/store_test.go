package store

import (
	"errors"
	"fmt"
	"testing"

	"restropos-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memBlobs is an in-memory BlobStore with optional write-failure injection.
type memBlobs struct {
	data      map[string][]byte
	failSaves bool
}

func newMemBlobs() *memBlobs {
	return &memBlobs{data: make(map[string][]byte)}
}

func (m *memBlobs) Load(key string) ([]byte, bool, error) {
	blob, ok := m.data[key]
	return blob, ok, nil
}

func (m *memBlobs) Save(key string, blob []byte) error {
	if m.failSaves {
		return fmt.Errorf("%w: disk full", ErrPersistence)
	}
	m.data[key] = blob
	return nil
}

func newTestStore(t *testing.T) (*Store, *memBlobs) {
	t.Helper()
	blobs := newMemBlobs()
	return New(blobs), blobs
}

func addMenuItem(t *testing.T, s *Store, name string, price int64) models.MenuItem {
	t.Helper()
	settings := s.Settings()
	item, _, err := s.AddMenuItem(MenuItemInput{
		Name:       name,
		Price:      decimal.NewFromInt(price),
		CategoryID: settings.Categories[0].ID,
	})
	if err != nil {
		t.Fatalf("AddMenuItem(%s): %v", name, err)
	}
	return item
}

func addWaiter(t *testing.T, s *Store, name string) models.UserAccount {
	t.Helper()
	user, _, err := s.AddUser(UserInput{Name: name, Role: models.RoleWaiter})
	if err != nil {
		t.Fatalf("AddUser(%s): %v", name, err)
	}
	return user
}

func TestNewSeedsDefaults(t *testing.T) {
	s, _ := newTestStore(t)
	settings := s.Settings()

	if !settings.VATRate.Equal(decimal.NewFromFloat(0.13)) {
		t.Errorf("vat rate = %s, want 0.13", settings.VATRate)
	}
	if !settings.ServiceChargeRate.Equal(decimal.NewFromFloat(0.10)) {
		t.Errorf("service charge rate = %s, want 0.10", settings.ServiceChargeRate)
	}
	if len(settings.Categories) == 0 || len(settings.Tables) == 0 || len(settings.Users) == 0 {
		t.Errorf("defaults missing collections: %d categories, %d tables, %d users",
			len(settings.Categories), len(settings.Tables), len(settings.Users))
	}
}

func TestNewSurvivesCorruptBlob(t *testing.T) {
	blobs := newMemBlobs()
	blobs.data[SettingsKey] = []byte("{not json")
	blobs.data[OrdersKey] = []byte("]]]")

	s := New(blobs)
	if got := s.Settings().RestaurantName; got == "" {
		t.Error("corrupt blob did not fall back to defaults")
	}
	if got := s.Orders("", ""); len(got) != 0 {
		t.Errorf("corrupt orders blob produced %d orders", len(got))
	}
}

func TestRoundTrip(t *testing.T) {
	blobs := newMemBlobs()
	s := New(blobs)

	item := addMenuItem(t, s, "Dal Bhat", 250)
	waiter := addWaiter(t, s, "Sita")
	table, _, err := s.AddTable(TableInput{Name: "Patio 1", Capacity: 2, Shape: models.ShapeCircle})
	if err != nil {
		t.Fatal(err)
	}
	order, _, err := s.PlaceOrder(PlaceOrderInput{
		Type:  models.OrderTakeout,
		Items: []OrderItemInput{{MenuItemID: item.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatal(err)
	}

	// a second store over the same blobs must reconstruct everything
	reloaded := New(blobs)
	settings := reloaded.Settings()

	if found := reloaded.findMenuItem(item.ID); found == nil || found.Name != "Dal Bhat" {
		t.Error("menu item lost in round trip")
	}
	if found := reloaded.findTable(table.ID); found == nil || found.Capacity != 2 {
		t.Error("table lost in round trip")
	}
	foundWaiter := false
	for _, u := range settings.Users {
		if u.ID == waiter.ID && u.Name == "Sita" {
			foundWaiter = true
		}
	}
	if !foundWaiter {
		t.Error("user lost in round trip")
	}
	got, err := reloaded.OrderByID(order.ID)
	if err != nil {
		t.Fatalf("order lost in round trip: %v", err)
	}
	if !got.Total.Equal(order.Total) || got.Status != order.Status {
		t.Errorf("order changed in round trip: %+v vs %+v", got, order)
	}
}

func TestPersistenceFailureWarnsButApplies(t *testing.T) {
	blobs := newMemBlobs()
	s := New(blobs)
	blobs.failSaves = true

	item, warn, err := s.AddMenuItem(MenuItemInput{
		Name:       "Thukpa",
		Price:      decimal.NewFromInt(180),
		CategoryID: s.Settings().Categories[0].ID,
	})
	if err != nil {
		t.Fatalf("mutation blocked by persistence failure: %v", err)
	}
	if warn == "" {
		t.Error("failed save produced no warning")
	}
	if s.findMenuItem(item.ID) == nil {
		t.Error("in-memory mutation was rolled back")
	}
}

func TestSetTableStatusSideEffects(t *testing.T) {
	s, _ := newTestStore(t)
	waiter := addWaiter(t, s, "Ramesh")
	item := addMenuItem(t, s, "Momo", 200)
	table := s.Settings().Tables[0]

	// occupying a vacant table without a waiter fails
	if _, _, err := s.SetTableStatus(table.ID, models.TableOccupied, waiter.ID, nil); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("occupied without waiter: got %v, want ErrValidation", err)
	}

	// occupy with a waiter, take some items
	if _, _, err := s.SetTableStatus(table.ID, models.TableOccupied, waiter.ID, &waiter.ID); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.SetTableItemQuantity(table.ID, item.ID, 2); err != nil {
		t.Fatal(err)
	}

	// needs_bill keeps everything
	got, _, err := s.SetTableStatus(table.ID, models.TableNeedsBill, waiter.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.CurrentItems) != 1 || got.WaiterID == nil {
		t.Errorf("needs_bill dropped session state: %+v", got)
	}

	// needs_cleaning clears items, keeps the waiter
	got, _, err = s.SetTableStatus(table.ID, models.TableNeedsCleaning, waiter.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.CurrentItems) != 0 {
		t.Error("needs_cleaning kept current items")
	}
	if got.WaiterID == nil {
		t.Error("needs_cleaning cleared the waiter")
	}

	// vacate by the assigned waiter clears the assignment too
	got, _, err = s.SetTableStatus(table.ID, models.TableVacant, waiter.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.CurrentItems) != 0 || got.WaiterID != nil {
		t.Errorf("vacate by own waiter left %+v", got)
	}
}

func TestVacateByOtherStaffKeepsWaiter(t *testing.T) {
	s, _ := newTestStore(t)
	waiter := addWaiter(t, s, "Ramesh")
	manager := addWaiter(t, s, "Gita")
	table := s.Settings().Tables[0]

	if _, _, err := s.SetTableStatus(table.ID, models.TableOccupied, waiter.ID, &waiter.ID); err != nil {
		t.Fatal(err)
	}
	got, _, err := s.SetTableStatus(table.ID, models.TableVacant, manager.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.WaiterID == nil || *got.WaiterID != waiter.ID {
		t.Error("vacate by other staff cleared the waiter assignment")
	}
}

func TestSetTableItemQuantity(t *testing.T) {
	s, _ := newTestStore(t)
	waiter := addWaiter(t, s, "Ramesh")
	momo := addMenuItem(t, s, "Momo", 200)
	chowmein := addMenuItem(t, s, "Chowmein", 100)
	table := s.Settings().Tables[0]

	// session items require an occupied table
	if _, _, err := s.SetTableItemQuantity(table.ID, momo.ID, 1); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("items on vacant table: got %v, want ErrValidation", err)
	}

	if _, _, err := s.SetTableStatus(table.ID, models.TableOccupied, waiter.ID, &waiter.ID); err != nil {
		t.Fatal(err)
	}

	if _, _, err := s.SetTableItemQuantity(table.ID, momo.ID, 1); err != nil {
		t.Fatal(err)
	}
	got, _, err := s.SetTableItemQuantity(table.ID, chowmein.ID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.CurrentItems) != 2 || got.CurrentItems[0].Name != "Momo" {
		t.Fatalf("insertion order broken: %+v", got.CurrentItems)
	}

	// dropping to zero removes the line entirely
	got, _, err = s.SetTableItemQuantity(table.ID, momo.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.CurrentItems) != 1 || got.CurrentItems[0].Name != "Chowmein" {
		t.Errorf("zero quantity did not remove the line: %+v", got.CurrentItems)
	}

	if _, _, err := s.SetTableItemQuantity(table.ID, uuid.New(), 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown menu item: got %v, want ErrNotFound", err)
	}
}

func TestPlaceOrderSnapshotsRates(t *testing.T) {
	s, _ := newTestStore(t)
	momo := addMenuItem(t, s, "Momo", 200)
	chowmein := addMenuItem(t, s, "Chowmein", 100)

	order, _, err := s.PlaceOrder(PlaceOrderInput{
		Type: models.OrderTakeout,
		Items: []OrderItemInput{
			{MenuItemID: momo.ID, Quantity: 1},
			{MenuItemID: chowmein.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if !order.Subtotal.Equal(decimal.NewFromInt(400)) {
		t.Errorf("subtotal = %s, want 400", order.Subtotal)
	}
	if !order.VAT.Equal(decimal.NewFromInt(52)) {
		t.Errorf("vat = %s, want 52", order.VAT)
	}
	if !order.ServiceCharge.Equal(decimal.NewFromInt(40)) {
		t.Errorf("service charge = %s, want 40", order.ServiceCharge)
	}
	if !order.Total.Equal(decimal.NewFromInt(492)) {
		t.Errorf("total = %s, want 492", order.Total)
	}

	// a later rate change must not alter the stored order
	newRate := decimal.NewFromFloat(0.25)
	if _, _, err := s.UpdateSettings(SettingsUpdate{VATRate: &newRate}); err != nil {
		t.Fatal(err)
	}
	got, err := s.OrderByID(order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.VATRate.Equal(decimal.NewFromFloat(0.13)) || !got.Total.Equal(decimal.NewFromInt(492)) {
		t.Errorf("rate change leaked into historical order: vatRate=%s total=%s", got.VATRate, got.Total)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	s, _ := newTestStore(t)
	momo := addMenuItem(t, s, "Momo", 200)

	if _, _, err := s.PlaceOrder(PlaceOrderInput{Type: "drive-through"}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("unknown type: got %v, want ErrValidation", err)
	}
	if _, _, err := s.PlaceOrder(PlaceOrderInput{Type: models.OrderTakeout}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("empty order: got %v, want ErrValidation", err)
	}
	if _, _, err := s.PlaceOrder(PlaceOrderInput{
		Type:  models.OrderDelivery,
		Items: []OrderItemInput{{MenuItemID: momo.ID, Quantity: 1}},
	}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("delivery without address: got %v, want ErrValidation", err)
	}
	if _, _, err := s.PlaceOrder(PlaceOrderInput{
		Type:  models.OrderTakeout,
		Items: []OrderItemInput{{MenuItemID: uuid.New(), Quantity: 1}},
	}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown menu item: got %v, want ErrNotFound", err)
	}
}

func TestPlaceOrderDeliveryCharge(t *testing.T) {
	s, _ := newTestStore(t)
	momo := addMenuItem(t, s, "Momo", 200)
	charge := decimal.NewFromInt(80)

	// delivery applies the charge
	order, _, err := s.PlaceOrder(PlaceOrderInput{
		Type:            models.OrderDelivery,
		Items:           []OrderItemInput{{MenuItemID: momo.ID, Quantity: 1}},
		DeliveryAddress: "Thamel, Kathmandu",
		DeliveryCharge:  &charge,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !order.DeliveryCharge.Equal(charge) {
		t.Errorf("delivery charge = %s, want 80", order.DeliveryCharge)
	}

	// takeout ignores it
	order, _, err = s.PlaceOrder(PlaceOrderInput{
		Type:           models.OrderTakeout,
		Items:          []OrderItemInput{{MenuItemID: momo.ID, Quantity: 1}},
		DeliveryCharge: &charge,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !order.DeliveryCharge.IsZero() {
		t.Errorf("takeout picked up a delivery charge of %s", order.DeliveryCharge)
	}
}

func TestPlaceOrderFromTableSession(t *testing.T) {
	s, _ := newTestStore(t)
	waiter := addWaiter(t, s, "Ramesh")
	momo := addMenuItem(t, s, "Momo", 200)
	table := s.Settings().Tables[0]

	if _, _, err := s.SetTableStatus(table.ID, models.TableOccupied, waiter.ID, &waiter.ID); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.SetTableItemQuantity(table.ID, momo.ID, 3); err != nil {
		t.Fatal(err)
	}

	order, _, err := s.PlaceOrder(PlaceOrderInput{Type: models.OrderDineIn, TableID: &table.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 3 {
		t.Errorf("order items = %+v, want the table session", order.Items)
	}
	if order.TableID == nil || *order.TableID != table.ID {
		t.Error("order lost its table reference")
	}
}

func TestTransitionOrder(t *testing.T) {
	s, _ := newTestStore(t)
	momo := addMenuItem(t, s, "Momo", 200)

	order, _, err := s.PlaceOrder(PlaceOrderInput{
		Type:  models.OrderTakeout,
		Items: []OrderItemInput{{MenuItemID: momo.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, next := range []models.OrderStatus{models.OrderConfirmed, models.OrderInKitchen} {
		if _, _, err := s.TransitionOrder(order.ID, next); err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
	}

	// in_kitchen cannot go back to confirmed
	if _, _, err := s.TransitionOrder(order.ID, models.OrderConfirmed); !errors.Is(err, models.ErrIllegalTransition) {
		t.Fatalf("in_kitchen -> confirmed: got %v, want ErrIllegalTransition", err)
	}
	got, err := s.OrderByID(order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.OrderInKitchen {
		t.Errorf("failed transition changed status to %s", got.Status)
	}

	// and forward to ready works
	if _, _, err := s.TransitionOrder(order.ID, models.OrderReady); err != nil {
		t.Fatalf("in_kitchen -> ready: %v", err)
	}
}

func TestDeleteUserClearsTableReferences(t *testing.T) {
	s, _ := newTestStore(t)
	waiter := addWaiter(t, s, "Ramesh")
	table := s.Settings().Tables[0]

	if _, _, err := s.AssignWaiter(table.ID, &waiter.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.DeleteUser(waiter.ID); err != nil {
		t.Fatal(err)
	}

	got := s.findTable(table.ID)
	if got.WaiterID != nil {
		t.Error("deleting the user left a dangling waiter reference")
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	s, _ := newTestStore(t)
	addMenuItem(t, s, "Momo", 200)
	categoryID := s.Settings().Categories[0].ID

	if _, err := s.DeleteCategory(categoryID); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestSettingsSnapshotIsDetached(t *testing.T) {
	s, _ := newTestStore(t)
	snapshot := s.Settings()

	name := "Window 1"
	if _, _, err := s.UpdateTable(snapshot.Tables[0].ID, TableUpdate{Name: &name}); err != nil {
		t.Fatal(err)
	}
	if snapshot.Tables[0].Name == "Window 1" {
		t.Error("snapshot shares table backing array with the store")
	}

	if _, _, err := s.AddCategory("Specials"); err != nil {
		t.Fatal(err)
	}
	if len(snapshot.Categories) == len(s.Settings().Categories) {
		t.Error("snapshot category list grew with the store")
	}
}

func TestReturnedTableIsDetached(t *testing.T) {
	s, _ := newTestStore(t)
	waiter := addWaiter(t, s, "Ramesh")
	momo := addMenuItem(t, s, "Momo", 200)
	table := s.Settings().Tables[0]

	if _, _, err := s.SetTableStatus(table.ID, models.TableOccupied, waiter.ID, &waiter.ID); err != nil {
		t.Fatal(err)
	}
	before, _, err := s.SetTableItemQuantity(table.ID, momo.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.SetTableItemQuantity(table.ID, momo.ID, 5); err != nil {
		t.Fatal(err)
	}
	if before.CurrentItems[0].Quantity != 1 {
		t.Errorf("earlier result mutated to quantity %d", before.CurrentItems[0].Quantity)
	}
}

func TestConcurrentReadsDuringMutation(t *testing.T) {
	s, _ := newTestStore(t)
	table := s.Settings().Tables[0]

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			name := fmt.Sprintf("Window %d", i)
			if _, _, err := s.UpdateTable(table.ID, TableUpdate{Name: &name}); err != nil {
				t.Errorf("UpdateTable: %v", err)
				return
			}
		}
	}()

	for i := 0; i < 200; i++ {
		for _, got := range s.Settings().Tables {
			_ = got.Name
			_ = len(got.CurrentItems)
		}
	}
	<-done
}

func TestUpdateSettingsRateBounds(t *testing.T) {
	s, _ := newTestStore(t)

	for _, raw := range []string{"-0.01", "1", "1.5"} {
		rate := decimal.RequireFromString(raw)
		if _, _, err := s.UpdateSettings(SettingsUpdate{VATRate: &rate}); !errors.Is(err, models.ErrValidation) {
			t.Errorf("rate %s accepted, want ErrValidation", raw)
		}
	}
	rate := decimal.NewFromFloat(0.2)
	if _, _, err := s.UpdateSettings(SettingsUpdate{ServiceChargeRate: &rate}); err != nil {
		t.Errorf("rate 0.2 rejected: %v", err)
	}
}
