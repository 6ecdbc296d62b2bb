package domain

// Origin classes carried on a caller's credential. Store mutations demand
// a prefix match on OriginStore; verification demands OriginAdmin.
const (
	OriginStore = "locale-store"
	OriginUser  = "locale-user"
	OriginAdmin = "locale-admin"
)

type Principal struct {
	ID     string
	Origin string
}

type IdentityResolver interface {
	// Resolve validates the bearer credential and returns the caller's
	// identity and origin class. requireStoreOrigin additionally demands
	// the OriginStore prefix and fails with ErrForbidden otherwise.
	Resolve(token string, requireStoreOrigin bool) (*Principal, error)
}

type TokenIssuer interface {
	Issue(store *StoreProfile) (token, refreshToken string, err error)
}

type LicenseHasher interface {
	Hash(plaintext string) (string, error)
}

type PointEncoder interface {
	Encode(coordinates [2]string) (Point, error)
}

type HandleEncoder interface {
	Encode(raw string) UPI
	Unavailable() UPI
}
