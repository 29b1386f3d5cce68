package collection

import "condoadmin/internal/storage"

const (
	ProfileDescriptionField = "profileDescription"
	UnknownProfile          = "Unknown"
)

// attachProfileDescriptions joins users to their profile by profileId.
// Only this one relation is resolved.
func attachProfileDescriptions(users []storage.Record, profiles []storage.Record) {
	descriptions := make(map[string]string, len(profiles))
	for _, p := range profiles {
		if d, ok := p["description"].(string); ok {
			descriptions[p.ID()] = d
		}
	}

	for _, u := range users {
		desc, ok := descriptions[storage.IDString(u["profileId"])]
		if !ok {
			desc = UnknownProfile
		}
		u[ProfileDescriptionField] = desc
	}
}
