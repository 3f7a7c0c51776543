package notion

// Filter is a query filter in the document store's JSON shape. The helpers
// below cover the operators this system uses: equality, contains, date
// range comparisons and AND composition.
type Filter map[string]any

// And composes filters with boolean AND.
func And(filters ...Filter) Filter {
	return Filter{"and": filters}
}

// DateEquals matches a date property against a calendar date.
func DateEquals(property, date string) Filter {
	return Filter{"property": property, "date": map[string]string{"equals": date}}
}

// DateOnOrAfter matches a date property at or after an ISO 8601 instant.
func DateOnOrAfter(property, iso string) Filter {
	return Filter{"property": property, "date": map[string]string{"on_or_after": iso}}
}

// DateBefore matches a date property strictly before an ISO 8601 instant.
func DateBefore(property, iso string) Filter {
	return Filter{"property": property, "date": map[string]string{"before": iso}}
}

// TextEquals is a case-sensitive exact match on a rich-text property.
func TextEquals(property, value string) Filter {
	return Filter{"property": property, "rich_text": map[string]string{"equals": value}}
}

// TextContains is a substring match on a rich-text property.
func TextContains(property, value string) Filter {
	return Filter{"property": property, "rich_text": map[string]string{"contains": value}}
}

// EditedOnOrAfter matches pages by their last-edited timestamp rather than a
// property.
func EditedOnOrAfter(iso string) Filter {
	return Filter{
		"timestamp":        "last_edited_time",
		"last_edited_time": map[string]string{"on_or_after": iso},
	}
}
