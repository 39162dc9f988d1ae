package models

// SyncRequest mirrors the host's change notification. Imported holds files
// whose content changed in place; it does not affect the project layout.
type SyncRequest struct {
	Added     []string
	Deleted   []string
	Moved     []string
	MovedFrom []string
	Imported  []string
}

// Affected returns Added, Deleted, Moved and MovedFrom merged in that order
// with duplicates removed.
func (r SyncRequest) Affected() []string {
	seen := make(map[string]struct{})
	var affected []string
	for _, group := range [][]string{r.Added, r.Deleted, r.Moved, r.MovedFrom} {
		for _, path := range group {
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			affected = append(affected, path)
		}
	}
	return affected
}

func (r SyncRequest) IsEmpty() bool {
	return len(r.Added)+len(r.Deleted)+len(r.Moved)+len(r.MovedFrom)+len(r.Imported) == 0
}
