package policies

import "context"

// QuoteArchive stores a rendered quote document and returns where it can be fetched.
type QuoteArchive interface {
	Archive(ctx context.Context, key string, document []byte) (url string, err error)
}
