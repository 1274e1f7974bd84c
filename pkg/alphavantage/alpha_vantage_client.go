package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const DefaultBaseUrl = "https://www.alphavantage.co/query"

var (
	ErrRateLimited = errors.New("alpha vantage rate limit reached")
	ErrEmptyQuote  = errors.New("alpha vantage returned no quote")
	ErrMalformed   = errors.New("alpha vantage returned a malformed body")
)

type Client struct {
	HttpClient *http.Client
	ApiKey     string
	BaseUrl    string
}

type GlobalQuote struct {
	Symbol           string `json:"01. symbol"`
	Open             string `json:"02. open"`
	High             string `json:"03. high"`
	Low              string `json:"04. low"`
	Price            string `json:"05. price"`
	Volume           string `json:"06. volume"`
	LatestTradingDay string `json:"07. latest trading day"`
	PreviousClose    string `json:"08. previous close"`
	Change           string `json:"09. change"`
	ChangePercent    string `json:"10. change percent"`
}

type globalQuoteResponse struct {
	GlobalQuote  *GlobalQuote `json:"Global Quote"`
	Note         string       `json:"Note"`
	Information  string       `json:"Information"`
	ErrorMessage string       `json:"Error Message"`
}

// GetGlobalQuote calls the GLOBAL_QUOTE function for symbol. The API
// reports throttling inside a 200 body, so ErrRateLimited covers both that
// and a real 429.
func (c Client) GetGlobalQuote(ctx context.Context, symbol string) (*GlobalQuote, error) {
	baseUrl := c.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", symbol)
	params.Set("apikey", c.ApiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseUrl+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	httpClient := c.HttpClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	response, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}

	if response.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	} else if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed with status code %d: %s", response.StatusCode, strings.TrimSpace(string(responseBytes)))
	}

	responseJson := globalQuoteResponse{}
	err = json.Unmarshal(responseBytes, &responseJson)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if responseJson.Note != "" || responseJson.Information != "" {
		return nil, fmt.Errorf("%w: %s%s", ErrRateLimited, responseJson.Note, responseJson.Information)
	}
	if responseJson.ErrorMessage != "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyQuote, responseJson.ErrorMessage)
	}
	if responseJson.GlobalQuote == nil || *responseJson.GlobalQuote == (GlobalQuote{}) {
		return nil, ErrEmptyQuote
	}

	return responseJson.GlobalQuote, nil
}
