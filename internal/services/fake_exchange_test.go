package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/kelsos/lykke-cli/internal/client"
	"github.com/kelsos/lykke-cli/internal/config"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// fakeExchange serves canned Lykke responses. Symbols without a body are
// answered with 204 No Content; a status entry overrides everything.
type fakeExchange struct {
	mu sync.Mutex

	rates       map[string]string
	rateStatus  map[string]int
	trades      map[string]string
	tradeStatus map[string]int

	walletSnapshots []string
	walletStatus    int
	walletCalls     int
	walletTrades    string
	walletTradesErr int

	orderBody   string
	orderStatus int
	orders      []map[string]interface{}

	requests []string
	apiKeys  []string
}

func newFakeExchange(t *testing.T, configure ...func(*config.Config)) (*fakeExchange, *ExchangeService) {
	t.Helper()

	fake := &fakeExchange{
		rates:       map[string]string{},
		rateStatus:  map[string]int{},
		trades:      map[string]string{},
		tradeStatus: map[string]int{},
	}

	server := httptest.NewServer(fake.router())
	t.Cleanup(server.Close)

	cfg := config.NewConfig()
	cfg.PublicURL = server.URL + "/public"
	cfg.HFTURL = server.URL + "/hft"
	for _, apply := range configure {
		apply(cfg)
	}

	service := NewExchangeServiceWithClient(cfg, client.NewAPIClient(cfg))
	service.rates.now = func() time.Time { return fixedNow }

	return fake, service
}

func (f *fakeExchange) router() *mux.Router {
	router := mux.NewRouter()

	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			f.mu.Lock()
			f.requests = append(f.requests, r.Method+" "+r.URL.RequestURI())
			if key := r.Header.Get(client.APIKeyHeader); key != "" {
				f.apiKeys = append(f.apiKeys, key)
			}
			f.mu.Unlock()
			next.ServeHTTP(w, r)
		})
	})

	router.HandleFunc("/public/AssetPairs/rate/{symbol}", func(w http.ResponseWriter, r *http.Request) {
		f.serveSymbol(w, mux.Vars(r)["symbol"], f.rates, f.rateStatus)
	}).Methods(http.MethodGet)

	router.HandleFunc("/public/Trades/{symbol}", func(w http.ResponseWriter, r *http.Request) {
		f.serveSymbol(w, mux.Vars(r)["symbol"], f.trades, f.tradeStatus)
	}).Methods(http.MethodGet)

	router.HandleFunc("/hft/Wallets", f.serveWallets).Methods(http.MethodGet)

	router.HandleFunc("/hft/History/trades", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.walletTradesErr != 0 {
			http.Error(w, "wallet history unavailable", f.walletTradesErr)
			return
		}
		writeBody(w, f.walletTrades)
	}).Methods(http.MethodGet)

	router.HandleFunc("/hft/Orders/market", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&payload)

		f.mu.Lock()
		defer f.mu.Unlock()
		f.orders = append(f.orders, payload)
		if f.orderStatus != 0 {
			http.Error(w, "order rejected", f.orderStatus)
			return
		}
		writeBody(w, f.orderBody)
	}).Methods(http.MethodPost)

	router.HandleFunc("/hft/IsAlive", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, `{"Version":"1.2.3"}`)
	}).Methods(http.MethodGet)

	return router
}

func (f *fakeExchange) serveSymbol(w http.ResponseWriter, symbol string, bodies map[string]string, statuses map[string]int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if status, ok := statuses[symbol]; ok {
		http.Error(w, http.StatusText(status), status)
		return
	}
	writeBody(w, bodies[symbol])
}

func (f *fakeExchange) serveWallets(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.walletStatus != 0 {
		http.Error(w, "wallet unavailable", f.walletStatus)
		return
	}

	body := ""
	if len(f.walletSnapshots) > 0 {
		idx := f.walletCalls
		if idx >= len(f.walletSnapshots) {
			idx = len(f.walletSnapshots) - 1
		}
		body = f.walletSnapshots[idx]
	}
	f.walletCalls++
	writeBody(w, body)
}

func writeBody(w http.ResponseWriter, body string) {
	if body == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func (f *fakeExchange) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fakeExchange) submittedOrders() []map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]interface{}(nil), f.orders...)
}
