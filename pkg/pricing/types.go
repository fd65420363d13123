package pricing

// Interval names accepted in a price recurrence descriptor.
const (
	IntervalDay   = "day"
	IntervalWeek  = "week"
	IntervalMonth = "month"
	IntervalYear  = "year"
)

// Values is the merchant configuration fetched from the config API.
// It is replaced wholesale on every successful refetch; partial updates
// go through Session.SetFieldValue on a deep clone.
type Values struct {
	Admin    Admin     `json:"admin"`
	Customer *Customer `json:"customer,omitempty"`
	Form     Form      `json:"form"`
	Products []Product `json:"products"`
}

// Admin carries the capability-initialization key. ClientKey is immutable for
// the lifetime of a session once the first fetch resolves it.
type Admin struct {
	ClientKey string `json:"clientKey"`
}

// Customer identifies the buyer the configuration was personalized for.
type Customer struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
}

// Form holds the presentation defaults for a pricing page: the currencies and
// billing intervals the merchant sells in, the currently selected pair, and
// theming hints.
type Form struct {
	Currencies   []string     `json:"currencies"`
	Currency     string       `json:"currency"`
	Intervals    []string     `json:"intervals"`
	Interval     string       `json:"interval"`
	Highlight    Highlight    `json:"highlight"`
	Theme        Theme        `json:"theme"`
	Presentation Presentation `json:"presentation"`
}

// Highlight marks the price or product a merchant wants visually emphasized.
type Highlight struct {
	Price   string `json:"price,omitempty"`
	Product string `json:"product,omitempty"`
	Label   string `json:"label,omitempty"`
	Style   string `json:"style,omitempty"`
}

// Theme carries merchant styling hints.
type Theme struct {
	Colors  Colors `json:"colors,omitempty"`
	License string `json:"license,omitempty"`
}

type Colors struct {
	Primary string `json:"primary,omitempty"`
}

type Presentation struct {
	Interval string `json:"interval,omitempty"`
	License  string `json:"license,omitempty"`
}

// Product is a sellable item with its available prices.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Prices      []Price `json:"prices,omitempty"`
}

// Price belongs to exactly one product. A nil Recurring means a one-time
// purchase. UnitAmount is in the smallest currency unit (cents for USD).
type Price struct {
	ID         string     `json:"id"`
	Currency   string     `json:"currency"`
	UnitAmount int64      `json:"unit_amount,omitempty"`
	Recurring  *Recurring `json:"recurring"`
}

// Recurring describes a subscription billing cadence.
type Recurring struct {
	Interval string `json:"interval"`
}

// Metadata is returned alongside Values; ID correlates a later checkout
// request with the configuration it was priced against.
type Metadata struct {
	ID string `json:"id"`
}

// FeatureGroup is an ordered, titled block of features for comparison tables.
type FeatureGroup struct {
	Title    string    `json:"title"`
	Features []Feature `json:"features"`
}

// Feature is a single comparable capability. ProductConfig maps product IDs to
// their enablement; a missing entry means the product has no configuration for
// this feature at all, which the table renders as a nil cell.
type Feature struct {
	Title         string        `json:"title"`
	Tooltip       string        `json:"tooltip,omitempty"`
	ProductConfig ProductConfig `json:"product_config"`
}

// ProductConfig keys feature enablement by product ID.
type ProductConfig map[string]*FeatureCell

// FeatureCell is one product's enablement of one feature.
type FeatureCell struct {
	Enabled bool `json:"enabled"`
}
