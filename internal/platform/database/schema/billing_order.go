package schema

// BillingOrderTable represents the 'billing.order' table
type BillingOrderTable struct {
	Table       string
	ID          string
	OwnerID     string
	Provider    string
	ProviderRef string
	ProductID   string
	Amount      string
	Currency    string
	Status      string
	CreatedAt   string
	UpdatedAt   string
}

// BillingOrder is the schema definition for billing.order
var BillingOrder = BillingOrderTable{
	Table:       `billing."order"`,
	ID:          "id",
	OwnerID:     "ownerid",
	Provider:    "provider",
	ProviderRef: "providerref",
	ProductID:   "productid",
	Amount:      "amount",
	Currency:    "currency",
	Status:      "status",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names in scan order
func (t BillingOrderTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.Provider, t.ProviderRef, t.ProductID, t.Amount, t.Currency, t.Status, t.CreatedAt, t.UpdatedAt,
	}
}
