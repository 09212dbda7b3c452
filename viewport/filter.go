package viewport

// FilterActive returns the subset of regions whose buffer id equals
// activeBufferID (case-sensitive string equality). An empty result is not an
// error: it signals that no viewport applies and instrumentation should be
// treated as unviewported.
func FilterActive(regions []Region, activeBufferID string) []Region {
	var matched []Region
	for _, region := range regions {
		if region.BufferID == activeBufferID {
			matched = append(matched, region)
		}
	}
	return matched
}

// ActiveRegion returns the first region matching activeBufferID, or nil when
// no region matches.
func ActiveRegion(regions []Region, activeBufferID string) *Region {
	matched := FilterActive(regions, activeBufferID)
	if len(matched) == 0 {
		return nil
	}
	return &matched[0]
}
