package client

import "net/url"

// ConfigParams narrow the fetched pricing configuration: an optional customer
// identity to personalize against, a price allowlist, and correlation IDs.
type ConfigParams struct {
	Customer      string
	CustomerEmail string
	Email         string
	Prices        []string
	ID            string
	Session       string
}

// encode serializes only present parameters. Empty strings are omitted
// entirely (the service treats absent and empty as the same thing) and slices
// expand to repeated name[]=value pairs.
func (p ConfigParams) encode() string {
	values := url.Values{}

	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}
	set("customer", p.Customer)
	set("customer_email", p.CustomerEmail)
	set("email", p.Email)
	set("id", p.ID)
	set("session", p.Session)

	for _, price := range p.Prices {
		if price != "" {
			values.Add("prices[]", price)
		}
	}

	return values.Encode()
}
