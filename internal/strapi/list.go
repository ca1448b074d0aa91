package strapi

import (
	"context"
	"encoding/json"
	"maps"
	"net/url"
	"strconv"

	"agencyweb/internal/models"
)

// pageSize is the number of entries requested per page when listing.
const pageSize = 100

// listAll reads every page of a collection endpoint. If a page yields no
// data, the entries gathered so far are returned without an error.
func listAll[T any](ctx context.Context, c *Client, endpoint string, query url.Values) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		q := url.Values{}
		if query != nil {
			q = maps.Clone(query)
		}
		q.Set("pagination[page]", strconv.Itoa(page))
		q.Set("pagination[pageSize]", strconv.Itoa(pageSize))

		raw, err := c.Request(ctx, endpoint, RequestOptions{Query: q})
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return all, nil
		}

		var resp models.ListResponse[T]
		if err := json.Unmarshal(raw, &resp); err != nil {
			c.log.Warn("strapi decode list", "endpoint", endpoint, "page", page, "error", err)
			return all, nil
		}
		all = append(all, resp.Data...)

		if page >= resp.Meta.Pagination.PageCount {
			return all, nil
		}
	}
}

// getOne decodes a single-entry response. ok is false when the CMS returned no data.
func getOne[T any](ctx context.Context, c *Client, endpoint string, opts RequestOptions) (item T, ok bool, err error) {
	raw, err := c.Request(ctx, endpoint, opts)
	if err != nil || raw == nil {
		return item, false, err
	}

	var resp models.SingleResponse[T]
	if err := json.Unmarshal(raw, &resp); err != nil {
		c.log.Warn("strapi decode entry", "endpoint", endpoint, "error", err)
		return item, false, nil
	}
	return resp.Data, true, nil
}
