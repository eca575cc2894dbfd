package model

// IdentitySource tags which authentication path produced an Identity
type IdentitySource string

const (
	// SourceGoogle marks identities resolved through the Google OAuth handshake
	SourceGoogle IdentitySource = "google"
	// SourceManual marks identities submitted through the manual form
	SourceManual IdentitySource = "manual"
)

// Identity is the merged guest identity shape used downstream of
// authentication. DisplayName and Email are always present regardless of
// source; Gender and AgeRangeMin are only ever populated by the provider.
type Identity struct {
	Source      IdentitySource `json:"source"`
	DisplayName string         `json:"display_name"`
	Email       string         `json:"email"`
	Gender      string         `json:"gender,omitempty"`
	AgeRangeMin int            `json:"age_range_min,omitempty"`
}

// NewOAuthIdentity builds a provider-backed identity. A display name and
// email are required; the remaining profile fields are optional.
func NewOAuthIdentity(displayName, email, gender string, ageRangeMin int) (*Identity, error) {
	if displayName == "" || email == "" {
		return nil, ErrIdentityIncomplete
	}
	return &Identity{
		Source:      SourceGoogle,
		DisplayName: displayName,
		Email:       email,
		Gender:      gender,
		AgeRangeMin: ageRangeMin,
	}, nil
}

// NewManualIdentity builds an identity from the manual name/email form
func NewManualIdentity(displayName, email string) (*Identity, error) {
	if displayName == "" || email == "" {
		return nil, ErrIdentityIncomplete
	}
	return &Identity{
		Source:      SourceManual,
		DisplayName: displayName,
		Email:       email,
	}, nil
}
