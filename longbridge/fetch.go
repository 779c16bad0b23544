package longbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"golang.org/x/time/rate"

	"github.com/jwei/taxfolio"
)

// submittedAtFormat is the timestamp format of the order history endpoint.
const submittedAtFormat = time.RFC3339

// Fetch retrieves all filled orders submitted between start and end, oldest
// first, following the history pagination backwards from end. Every call is
// throttled by a token bucket sized from Config.MinInterval.
func Fetch(ctx context.Context, cfg Config, start, end time.Time) ([]taxfolio.Trade, error) {
	c := &client{
		cfg:     cfg,
		http:    new(http.Client),
		limiter: rate.NewLimiter(rate.Every(cfg.MinInterval), 1),
	}

	var trades []taxfolio.Trade
	cursor := end
	for {
		orders, hasMore, err := c.historyPage(ctx, start, cursor)
		if err != nil {
			return nil, err
		}
		for _, o := range orders {
			t, err := c.orderTrade(ctx, o)
			if err != nil {
				// An order that cannot be detailed is logged and skipped,
				// not fatal: the export is reconciled by the merge step.
				log.Printf("skipping order %s: %v", o.ID, err)
				continue
			}
			trades = append(trades, t)
		}
		if !hasMore || len(orders) == 0 {
			break
		}
		cursor = orders[len(orders)-1].SubmittedAt
	}

	taxfolio.SortTrades(trades)
	return trades, nil
}

// order is the slice of the history response the fetch needs.
type order struct {
	ID          string
	SubmittedAt time.Time
	raw         map[string]any
}

type client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
}

// historyPage fetches one page of filled orders submitted in [start, end].
func (c *client) historyPage(ctx context.Context, start, end time.Time) (orders []order, hasMore bool, err error) {
	query := url.Values{}
	query.Set("status", "FilledStatus")
	query.Set("start_at", fmt.Sprint(start.Unix()))
	query.Set("end_at", fmt.Sprint(end.Unix()))

	var jobj any
	if err := c.jwget(ctx, "/v1/trade/order/history", query, &jobj); err != nil {
		return nil, false, err
	}

	jlist, err := jsonpath.Get("$.data.orders", jobj)
	if err != nil {
		return nil, false, fmt.Errorf("cannot locate orders in response: %w", err)
	}
	list, ok := jlist.([]any)
	if !ok {
		return nil, false, fmt.Errorf("orders is not a list: %T", jlist)
	}
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		submitted, err := time.Parse(submittedAtFormat, jstring(m, "submitted_at"))
		if err != nil {
			return nil, false, fmt.Errorf("order %s: bad submitted_at: %w", jstring(m, "order_id"), err)
		}
		orders = append(orders, order{
			ID:          jstring(m, "order_id"),
			SubmittedAt: submitted,
			raw:         m,
		})
	}

	if more, err := jsonpath.Get("$.data.has_more", jobj); err == nil {
		hasMore, _ = more.(bool)
	}
	return orders, hasMore, nil
}

// orderTrade details one order and normalizes it into a trade. The history
// row has everything but the charged fee, which only the detail endpoint
// reports.
func (c *client) orderTrade(ctx context.Context, o order) (taxfolio.Trade, error) {
	query := url.Values{}
	query.Set("order_id", o.ID)

	var jobj any
	if err := c.jwget(ctx, "/v1/trade/order", query, &jobj); err != nil {
		return taxfolio.Trade{}, err
	}

	fee := "0"
	if jfee, err := jsonpath.Get("$.data.charge_detail.total_amount", jobj); err == nil {
		if s, ok := jfee.(string); ok && s != "" {
			fee = s
		}
	}

	side, err := parseSide(jstring(o.raw, "side"))
	if err != nil {
		return taxfolio.Trade{}, err
	}
	currency := jstring(o.raw, "currency")
	qty, err := taxfolio.ParseQuantity(jstring(o.raw, "executed_quantity"))
	if err != nil {
		return taxfolio.Trade{}, fmt.Errorf("bad executed_quantity: %w", err)
	}
	price, err := taxfolio.ParseMoney(jstring(o.raw, "executed_price"), currency)
	if err != nil {
		return taxfolio.Trade{}, fmt.Errorf("bad executed_price: %w", err)
	}
	feeMoney, err := taxfolio.ParseMoney(fee, currency)
	if err != nil {
		return taxfolio.Trade{}, fmt.Errorf("bad fee: %w", err)
	}

	return taxfolio.NewTrade(jstring(o.raw, "symbol"), side, qty, price, feeMoney, currency, o.SubmittedAt), nil
}

// parseSide maps the API side values onto the trade model. The REST API
// writes bare "Buy"/"Sell"; the SDK exports write the qualified tags.
func parseSide(s string) (taxfolio.Side, error) {
	switch s {
	case "Buy":
		return taxfolio.Buy, nil
	case "Sell":
		return taxfolio.Sell, nil
	default:
		return taxfolio.ParseSide(s)
	}
}

// jwget performs a rate-limited, authenticated GET and unmarshals the JSON
// response into data.
func (c *client) jwget(ctx context.Context, path string, query url.Values, data any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	addr := c.cfg.BaseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Api-Key", c.cfg.AppKey)
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, data)
}

func jstring(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
