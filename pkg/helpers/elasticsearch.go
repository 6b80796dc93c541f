package helpers

import (
	"github.com/elastic/go-elasticsearch/v8"
)

// NewESClient builds an Elasticsearch client; returns nil when no addresses
// are configured so indexing degrades to a no-op.
func NewESClient(addrs []string, user, pass string) (*elasticsearch.Client, error) {
	if len(addrs) == 0 {
		return nil, nil
	}
	cfg := elasticsearch.Config{Addresses: addrs}
	if user != "" {
		cfg.Username = user
		cfg.Password = pass
	}
	return elasticsearch.NewClient(cfg)
}
