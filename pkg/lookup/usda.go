package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"nutrilog-backend/domain"
	"nutrilog-backend/internal/logging"
	"nutrilog-backend/internal/metrics"
	"nutrilog-backend/pkg/nutrition"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://api.nal.usda.gov/fdc/v1"

// FoodData Central nutrient ids, values are per 100 g.
const (
	nutrientEnergy  = 1008
	nutrientProtein = 1003
	nutrientCarbs   = 1005
	nutrientFat     = 1004
	nutrientFiber   = 1079
	nutrientWater   = 1051
)

type (
	// Client searches an external food database. Every failure, including a
	// missing API key, is reported as domain.ErrLookupUnavailable.
	Client interface {
		Search(ctx context.Context, query string, limit int) ([]Food, error)
		Food(ctx context.Context, externalID string) (Food, error)
		Portions(ctx context.Context, externalID string) ([]nutrition.Portion, error)
	}

	// Food is a search candidate normalized per 100 g.
	Food struct {
		ExternalID string
		Name       string
		Brand      string
		Nutrients  nutrition.Profile
		Portions   []nutrition.Portion
	}

	Config struct {
		BaseURL       string
		APIKey        string
		RatePerSecond float64
		Timeout       time.Duration
	}

	usdaClient struct {
		cfg     Config
		http    *http.Client
		limiter *rate.Limiter
		log     *logging.Logger
		metrics *metrics.Metrics
	}
)

func NewUSDAClient(cfg Config, log *logging.Logger, m *metrics.Metrics) Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	limit := rate.Limit(cfg.RatePerSecond)
	if cfg.RatePerSecond <= 0 {
		limit = rate.Inf
	}
	return &usdaClient{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, 1),
		log:     log.Named("lookup"),
		metrics: m,
	}
}

type (
	searchResponse struct {
		Foods []searchFood `json:"foods"`
	}

	searchFood struct {
		FdcID         int            `json:"fdcId"`
		Description   string         `json:"description"`
		BrandOwner    string         `json:"brandOwner"`
		BrandName     string         `json:"brandName"`
		FoodNutrients []foodNutrient `json:"foodNutrients"`
		FoodMeasures  []foodMeasure  `json:"foodMeasures"`
	}

	foodNutrient struct {
		NutrientID int     `json:"nutrientId"`
		Value      float64 `json:"value"`
	}

	foodMeasure struct {
		DisseminationText string  `json:"disseminationText"`
		Modifier          string  `json:"modifier"`
		GramWeight        float64 `json:"gramWeight"`
	}

	detailResponse struct {
		FdcID         int              `json:"fdcId"`
		Description   string           `json:"description"`
		BrandOwner    string           `json:"brandOwner"`
		FoodNutrients []detailNutrient `json:"foodNutrients"`
		FoodPortions  []foodPortion    `json:"foodPortions"`
	}

	detailNutrient struct {
		Nutrient struct {
			ID int `json:"id"`
		} `json:"nutrient"`
		Amount float64 `json:"amount"`
	}

	foodPortion struct {
		Amount             float64 `json:"amount"`
		GramWeight         float64 `json:"gramWeight"`
		Modifier           string  `json:"modifier"`
		PortionDescription string  `json:"portionDescription"`
		MeasureUnit        struct {
			Name string `json:"name"`
		} `json:"measureUnit"`
	}
)

func (c *usdaClient) Search(ctx context.Context, query string, limit int) ([]Food, error) {
	if limit <= 0 || limit > 50 {
		limit = 25
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("pageSize", strconv.Itoa(limit))

	var resp searchResponse
	if err := c.get(ctx, "search", "/foods/search", params, &resp); err != nil {
		return nil, err
	}

	foods := make([]Food, 0, len(resp.Foods))
	for _, f := range resp.Foods {
		brand := f.BrandOwner
		if brand == "" {
			brand = f.BrandName
		}
		foods = append(foods, Food{
			ExternalID: strconv.Itoa(f.FdcID),
			Name:       f.Description,
			Brand:      brand,
			Nutrients:  extractNutrients(f.FoodNutrients),
			Portions:   measurePortions(f.FoodMeasures),
		})
	}
	return foods, nil
}

// Food fetches one food with its full portion list.
func (c *usdaClient) Food(ctx context.Context, externalID string) (Food, error) {
	if _, err := strconv.Atoi(externalID); err != nil {
		return Food{}, domain.ErrFoodNotFound
	}

	var resp detailResponse
	if err := c.get(ctx, "food", "/food/"+externalID, url.Values{}, &resp); err != nil {
		return Food{}, err
	}

	nutrients := make([]foodNutrient, 0, len(resp.FoodNutrients))
	for _, n := range resp.FoodNutrients {
		nutrients = append(nutrients, foodNutrient{NutrientID: n.Nutrient.ID, Value: n.Amount})
	}
	portions := make([]nutrition.Portion, 0, len(resp.FoodPortions))
	for _, p := range resp.FoodPortions {
		portions = append(portions, nutrition.Portion{
			Unit:       portionLabel(p),
			GramWeight: p.GramWeight,
			Amount:     p.Amount,
		})
	}
	return Food{
		ExternalID: externalID,
		Name:       resp.Description,
		Brand:      resp.BrandOwner,
		Nutrients:  extractNutrients(nutrients),
		Portions:   portions,
	}, nil
}

func (c *usdaClient) Portions(ctx context.Context, externalID string) ([]nutrition.Portion, error) {
	f, err := c.Food(ctx, externalID)
	if err != nil {
		return nil, err
	}
	return f.Portions, nil
}

func (c *usdaClient) get(ctx context.Context, op, path string, params url.Values, out any) error {
	if c.cfg.APIKey == "" {
		return c.fail(ctx, op, "missing_key", fmt.Errorf("api key not configured"))
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return c.fail(ctx, op, "rate_limited", err)
	}

	params.Set("api_key", c.cfg.APIKey)
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return c.fail(ctx, op, "error", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(ctx, op, "error", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.fail(ctx, op, "bad_status", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return c.fail(ctx, op, "bad_body", err)
	}

	c.metrics.LookupRequestsTotal.WithLabelValues(op, "ok").Inc()
	return nil
}

func (c *usdaClient) fail(ctx context.Context, op, result string, err error) error {
	c.metrics.LookupRequestsTotal.WithLabelValues(op, result).Inc()
	c.log.Warn(ctx, "food lookup failed", zap.String("op", op), zap.String("result", result), zap.Error(err))
	return fmt.Errorf("%w: %s: %v", domain.ErrLookupUnavailable, op, err)
}

func extractNutrients(nutrients []foodNutrient) nutrition.Profile {
	var p nutrition.Profile
	for _, n := range nutrients {
		switch n.NutrientID {
		case nutrientEnergy:
			p.Calories = n.Value
		case nutrientProtein:
			p.Protein = n.Value
		case nutrientCarbs:
			p.Carbs = n.Value
		case nutrientFat:
			p.Fat = n.Value
		case nutrientFiber:
			p.Fiber = n.Value
		case nutrientWater:
			p.Water = n.Value
		}
	}
	return p
}

func measurePortions(measures []foodMeasure) []nutrition.Portion {
	portions := make([]nutrition.Portion, 0, len(measures))
	for _, m := range measures {
		label, amount := strings.TrimSpace(m.Modifier), 1.0
		if label == "" {
			amount, label = splitAmount(m.DisseminationText)
		}
		portions = append(portions, nutrition.Portion{Unit: label, GramWeight: m.GramWeight, Amount: amount})
	}
	return portions
}

// splitAmount separates a leading count ("1", "0.5" or "1/2") from a measure
// text such as "1/2 cup, chopped". Text without one keeps an amount of 1.
func splitAmount(text string) (float64, string) {
	text = strings.TrimSpace(text)
	head, rest, ok := strings.Cut(text, " ")
	if !ok {
		return 1, text
	}
	rest = strings.TrimSpace(rest)

	if num, den, frac := strings.Cut(head, "/"); frac {
		n, errN := strconv.ParseFloat(num, 64)
		d, errD := strconv.ParseFloat(den, 64)
		if errN != nil || errD != nil || n <= 0 || d <= 0 {
			return 1, text
		}
		return n / d, rest
	}
	v, err := strconv.ParseFloat(head, 64)
	if err != nil || v <= 0 {
		return 1, text
	}
	return v, rest
}

// portionLabel builds the descriptor matched against "cup" labels. Legacy
// entries keep the whole label in the modifier with an undetermined unit.
func portionLabel(p foodPortion) string {
	unit := strings.TrimSpace(p.MeasureUnit.Name)
	modifier := strings.TrimSpace(p.Modifier)
	switch {
	case unit == "" || strings.EqualFold(unit, "undetermined"):
		if modifier != "" {
			return modifier
		}
		return p.PortionDescription
	case modifier != "":
		return unit + ", " + modifier
	default:
		return unit
	}
}
