package taxlot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
)

// The gain engine takes current prices as plain values; this file is the
// collaborator that can supply them. It is entirely optional: nothing in the
// lot engines depends on it.

// PriceProvider supplies a current price for a symbol.
type PriceProvider interface {
	LatestPrice(symbol string) (Money, error)
}

// StaticPrices is a PriceProvider over a fixed symbol-to-price table,
// typically prices the caller already fetched or recorded.
type StaticPrices map[string]Money

func (p StaticPrices) LatestPrice(symbol string) (Money, error) {
	price, ok := p[symbol]
	if !ok {
		return Money{}, fmt.Errorf("no price recorded for %q", symbol)
	}
	return price, nil
}

// IntradayFeed fetches the latest exchanged price for a symbol from the
// Lang & Schwarz chart endpoint. Quotes are in EUR. The feed needs a mapping
// from symbol to the endpoint's numeric instrument id.
type IntradayFeed struct {
	Client      *http.Client
	Instruments map[string]string // symbol -> instrument id
}

func (f *IntradayFeed) LatestPrice(symbol string) (Money, error) {
	instrument, ok := f.Instruments[symbol]
	if !ok {
		return Money{}, fmt.Errorf("no instrument id mapped for %q", symbol)
	}
	client := f.Client
	if client == nil {
		client = new(http.Client)
	}

	addr := "https://www.ls-tc.de/_rpc/json/instrument/chart/dataForInstrument?instrumentId=" + instrument + "&series=intraday&type=mini"
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return Money{}, fmt.Errorf("error in wget %q: %w", symbol, err)
	}
	path := "$.series.intraday.data[-1:][1]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return Money{}, fmt.Errorf("error parsing %q: %q %w", symbol, path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return Money{}, fmt.Errorf("error parsing %q: %q %s %v", symbol, path, "not a float", jval)
	}
	return M(val, "EUR"), nil
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}
