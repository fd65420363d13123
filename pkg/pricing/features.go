package pricing

// TableHeader is one product column in the comparison table header row.
type TableHeader struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// TableColumn describes one column of a feature group: the leading column
// carries the group title as Header, product columns carry only an Accessor
// (the product ID rows are keyed by).
type TableColumn struct {
	Header   string `json:"header,omitempty"`
	Accessor string `json:"accessor"`
}

// RowTitle is the leading cell of a feature row.
type RowTitle struct {
	Value   string `json:"value"`
	Tooltip string `json:"tooltip,omitempty"`
}

// TableRow is one feature across all products. Cells is keyed by product ID;
// a nil cell means the product has no configuration entry for the feature.
type TableRow struct {
	Title RowTitle                `json:"title"`
	Cells map[string]*FeatureCell `json:"cells"`
}

// TableGroup is the rendered form of one feature group.
type TableGroup struct {
	Columns []TableColumn `json:"columns"`
	Rows    []TableRow    `json:"rows"`
}

// Table is a product feature comparison table. Ordering follows the inputs:
// products order the header and columns, feature groups order the groups, and
// features order the rows within each group.
type Table struct {
	Header []TableHeader `json:"header"`
	Groups []TableGroup  `json:"groups"`
}

// FeatureTable assembles a comparison table for the given products and feature
// groups. It is a pure projection of its inputs and never mutates them.
func FeatureTable(products []Product, groups []FeatureGroup) Table {
	header := make([]TableHeader, 0, len(products))
	for _, p := range products {
		header = append(header, TableHeader{ID: p.ID, Title: p.Name})
	}

	tableGroups := make([]TableGroup, 0, len(groups))
	for _, group := range groups {
		columns := make([]TableColumn, 0, len(products)+1)
		columns = append(columns, TableColumn{Header: group.Title, Accessor: "title"})
		for _, p := range products {
			columns = append(columns, TableColumn{Accessor: p.ID})
		}

		rows := make([]TableRow, 0, len(group.Features))
		for _, feature := range group.Features {
			cells := make(map[string]*FeatureCell, len(products))
			for _, p := range products {
				cells[p.ID] = feature.ProductConfig[p.ID]
			}
			rows = append(rows, TableRow{
				Title: RowTitle{Value: feature.Title, Tooltip: feature.Tooltip},
				Cells: cells,
			})
		}

		tableGroups = append(tableGroups, TableGroup{Columns: columns, Rows: rows})
	}

	return Table{Header: header, Groups: tableGroups}
}

// ProductFeatures returns the features enabled for one product, preserving
// group and feature order.
func ProductFeatures(productID string, groups []FeatureGroup) []Feature {
	var enabled []Feature
	for _, group := range groups {
		for _, feature := range group.Features {
			if cell, ok := feature.ProductConfig[productID]; ok && cell != nil && cell.Enabled {
				enabled = append(enabled, feature)
			}
		}
	}
	return enabled
}
