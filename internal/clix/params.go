package clix

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

type PageParams struct {
	Page  int
	Limit int
}

func ParsePage(flags *pflag.FlagSet) PageParams {
	page, _ := flags.GetInt("page")
	limit, _ := flags.GetInt("limit")
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return PageParams{Page: page, Limit: limit}
}

// ParseDateFlag reads a YYYY-MM-DD flag value, nil when unset.
func ParseDateFlag(flags *pflag.FlagSet, name string) (*time.Time, error) {
	raw, _ := flags.GetString(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s (expected YYYY-MM-DD): %s", name, raw)
	}
	return &t, nil
}
