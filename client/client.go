package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/totegamma/todolist/internal/domain"
)

const (
	defaultTimeout = 3 * time.Second
	optionsKey     = "category-options"
)

// ErrUnexpectedStatus is wrapped by every error caused by a non-success
// response from the server.
var ErrUnexpectedStatus = errors.New("unexpected status code")

type Client struct {
	client    *http.Client
	cache     *cache.Cache
	userAgent string
	baseURL   string
}

// New returns a client for the todolist server at baseURL
// (e.g. "http://localhost:8000").
func New(baseURL string) *Client {
	httpClient := http.Client{
		Timeout: defaultTimeout,
		// a 303 is how the server acknowledges a submission
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	c := &Client{
		client:    &httpClient,
		cache:     cache.New(time.Minute, 5*time.Minute),
		userAgent: "todolist-client",
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
	httpClient.Transport = c
	return c
}

func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	return http.DefaultTransport.RoundTrip(req)
}

func (c *Client) ListItems(ctx context.Context, search string) ([]domain.Item, error) {
	path := "/items"
	if search != "" {
		path += "?searchString=" + url.QueryEscape(search)
	}

	var items []domain.Item
	if err := c.getJSON(ctx, path, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetItem(ctx context.Context, id int64) (domain.ItemDetails, error) {
	var details domain.ItemDetails
	err := c.getJSON(ctx, "/items/"+strconv.FormatInt(id, 10), &details)
	return details, err
}

// CategoryOptions are cached for the lifetime of the client cache.
func (c *Client) CategoryOptions(ctx context.Context) ([]domain.CategoryOption, error) {
	if x, found := c.cache.Get(optionsKey); found {
		return x.([]domain.CategoryOption), nil
	}

	var options []domain.CategoryOption
	if err := c.getJSON(ctx, "/categories", &options); err != nil {
		return nil, err
	}

	c.cache.Set(optionsKey, options, cache.DefaultExpiration)
	return options, nil
}

// CreateItem submits a new item. categoryID 0 leaves it uncategorized.
//
// The item is stored before the category link. A not-found error for an
// unknown category therefore still leaves the item behind; check ListItems
// before retrying to avoid a duplicate.
func (c *Client) CreateItem(ctx context.Context, description string, done bool, categoryID int64) error {
	return c.postForm(ctx, "/items/create", itemValues(description, done, categoryID))
}

// EditItem overwrites the item's fields, then links categoryID. As with
// CreateItem, a failed link does not undo the update.
func (c *Client) EditItem(ctx context.Context, item domain.Item, categoryID int64) error {
	path := "/items/" + strconv.FormatInt(item.ID, 10) + "/edit"
	return c.postForm(ctx, path, itemValues(item.Description, item.Done, categoryID))
}

func (c *Client) AddCategory(ctx context.Context, itemID, categoryID int64) error {
	path := "/items/" + strconv.FormatInt(itemID, 10) + "/categories"
	return c.postForm(ctx, path, url.Values{"categoryId": {strconv.FormatInt(categoryID, 10)}})
}

func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.postForm(ctx, "/items/"+strconv.FormatInt(id, 10)+"/delete", url.Values{})
}

func (c *Client) DeleteCategoryLink(ctx context.Context, joinID int64) error {
	return c.postForm(ctx, "/items/categories/delete", url.Values{"joinId": {strconv.FormatInt(joinID, 10)}})
}

func itemValues(description string, done bool, categoryID int64) url.Values {
	return url.Values{
		"description": {description},
		"done":        {strconv.FormatBool(done)},
		"categoryId":  {strconv.FormatInt(categoryID, 10)},
	}
}

func (c *Client) getJSON(ctx context.Context, path string, response any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to perform request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}

func (c *Client) postForm(ctx context.Context, path string, values url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(values.Encode()))
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to perform request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		return statusError(resp)
	}
	return nil
}

func statusError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return errors.Wrap(ErrUnexpectedStatus, fmt.Sprintf("%d: %s", resp.StatusCode, body.Error))
	}
	return errors.Wrap(ErrUnexpectedStatus, strconv.Itoa(resp.StatusCode))
}
