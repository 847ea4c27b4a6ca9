package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lamvuong/go-shop-catalog/catalog"
	"github.com/lamvuong/go-shop-catalog/config"
	"github.com/lamvuong/go-shop-catalog/models"
	"github.com/lamvuong/go-shop-catalog/output"
	"github.com/lamvuong/go-shop-catalog/query"
	"github.com/lamvuong/go-shop-catalog/search"
	"github.com/lamvuong/go-shop-catalog/store"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load()

	defaultCfg := config.DefaultConfig()
	productsDefault, _ := config.EnvString("CATALOG_PRODUCTS")
	shopsDefault, _ := config.EnvString("CATALOG_SHOPS")
	outputDefault := defaultCfg.OutputFile
	if value, ok := config.EnvString("CATALOG_OUTPUT"); ok {
		outputDefault = value
	}
	metricsDefault, _ := config.EnvString("CATALOG_METRICS_ADDR")
	redisDefault, _ := config.EnvString("CATALOG_REDIS_ADDR")

	productsSource := flag.String("products", productsDefault, "Product source: file path or http(s) URL")
	shopsSource := flag.String("shops", shopsDefault, "Shop source: file path or http(s) URL (optional)")
	delimiter := flag.String("delimiter", ",", "Field delimiter of the source files")
	category := flag.String("category", models.FilterAll, "Category key filter")
	tier := flag.String("tier", models.FilterAll, "Tier filter: n1, n2, n3, or all")
	minPrice := flag.Float64("min-price", 0, "Minimum sale price")
	maxPrice := flag.Float64("max-price", 0, "Maximum sale price (0 = unbounded)")
	minDiscount := flag.Int("min-discount", 0, "Minimum discount percent")
	minRating := flag.Float64("min-rating", 0, "Minimum rating")
	filterSearch := flag.String("filter-search", "", "Search text applied inside the filter pass")
	searchQuery := flag.String("search", "", "Dedicated scored search; supersedes filters")
	queryString := flag.String("qs", "", "Seed filters from a URL query string, e.g. category=dien-tu&minPrice=10000")
	sortKey := flag.String("sort", "", "Sort key: price-asc, price-desc, discount-desc, sold-desc, rating-desc, rating-asc, name-asc, name-desc")
	limit := flag.Int("limit", 0, "Maximum rows to write (0 = all)")
	outputFile := flag.String("output", outputDefault, "Output file path")
	outputFormat := flag.String("format", "csv", "Output format: csv, json, or dual")
	metricsAddr := flag.String("metrics-addr", metricsDefault, "Prometheus metrics listen address (e.g. :9090)")
	redisAddr := flag.String("redis", redisDefault, "Redis address for recent-search persistence (optional)")
	verbose := flag.Bool("v", false, "Enable verbose logging")

	flag.Parse()

	logger, level := newLogger(*verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())

	cfg := defaultCfg
	cfg.ProductsSource = *productsSource
	cfg.ShopsSource = *shopsSource
	cfg.OutputFile = *outputFile
	cfg.OutputFormat = strings.ToLower(*outputFormat)
	cfg.MetricsAddr = *metricsAddr
	cfg.RedisAddr = *redisAddr
	cfg.Verbose = *verbose
	if *delimiter != "" {
		cfg.Delimiter = []rune(*delimiter)[0]
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.ProductsSource == "" {
		slog.Error("a product source is required (-products)")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recentStore := buildRecentStore(cfg)
	session, err := catalog.NewSession(ctx, cfg, recentStore)
	if err != nil {
		slog.Error("initialising session", slog.Any("error", err))
		os.Exit(1)
	}
	defer session.Close()

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(session.Loader().Metrics.Registry, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		slog.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
	}

	startTime := time.Now()

	if err := session.LoadProducts(ctx, cfg.ProductsSource); err != nil {
		slog.Error("loading products", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.ShopsSource != "" {
		if err := session.LoadShops(ctx, cfg.ShopsSource); err != nil {
			slog.Error("loading shops", slog.Any("error", err))
			os.Exit(1)
		}
	}

	seedFilters(session, *queryString, *category, *tier, *minPrice, *maxPrice, *minDiscount, *minRating, *filterSearch)
	session.SortBy(models.SortKey(*sortKey))

	if *searchQuery != "" {
		results := session.Search(ctx, *searchQuery)
		slog.Info("search complete",
			slog.String("query", *searchQuery),
			slog.Int("matches", len(results)),
		)
	}

	results := session.Results()
	if *limit > 0 && len(results) > *limit {
		results = results[:*limit]
	}

	writer, err := createWriter(cfg.OutputFormat, cfg.OutputFile)
	if err != nil {
		slog.Error("creating writer", slog.Any("error", err))
		os.Exit(1)
	}
	if err := writer.Write(results); err != nil {
		slog.Error("writing results", slog.Any("error", err))
		writer.Close()
		os.Exit(1)
	}
	if err := writer.Validate(); err != nil {
		slog.Error("output validation failed", slog.Any("error", err))
	}
	if err := writer.Close(); err != nil {
		slog.Error("close writer", slog.Any("error", err))
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		cancel()
	}

	printSummary(session, results, time.Since(startTime), cfg.OutputFile)
}

// seedFilters seeds the session filter state from the query string first,
// then lets explicit flags override.
func seedFilters(session *catalog.Session, rawQuery, category, tier string, minPrice, maxPrice float64, minDiscount int, minRating float64, filterSearch string) {
	state := session.FilterState()

	if rawQuery != "" {
		values, err := url.ParseQuery(rawQuery)
		if err != nil {
			slog.Warn("ignoring malformed query string", slog.Any("error", err))
		} else {
			seeded := query.FiltersFromQuery(values)
			state.SetCategory(seeded.Category)
			state.SetTier(seeded.Tier)
			state.SetPriceRange(seeded.MinPrice, seeded.MaxPrice)
			state.SetMinDiscount(seeded.MinDiscount)
			state.SetSearchQuery(seeded.SearchQuery)
		}
	}

	if category != models.FilterAll {
		state.SetCategory(category)
	}
	if tier != models.FilterAll {
		state.SetTier(tier)
	}
	if minPrice > 0 || maxPrice > 0 {
		state.SetPriceRange(minPrice, maxPrice)
	}
	if minDiscount > 0 {
		state.SetMinDiscount(minDiscount)
	}
	if minRating > 0 {
		state.SetMinRating(minRating)
	}
	if filterSearch != "" {
		state.SetSearchQuery(filterSearch)
	}
}

func buildRecentStore(cfg *config.Config) search.RecentStore {
	if cfg.RedisAddr == "" {
		return store.NewMemoryRecentStore()
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	return store.NewRecentSearchStore(client, cfg.KeyPrefix)
}

func createWriter(format, filename string) (output.Writer, error) {
	switch format {
	case "json":
		return output.NewJSONWriter(filename)
	case "csv":
		return output.NewCSVWriter(filename)
	case "dual":
		jsonFilename := strings.TrimSuffix(filename, ".csv") + ".json"
		return output.NewDualWriter(filename, jsonFilename)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func printSummary(session *catalog.Session, results []models.Record, duration time.Duration, outputFile string) {
	separator := "--------------------------------------------------"
	fmt.Println("\n" + separator)
	fmt.Println("Catalog query complete")

	products := session.Products()
	shops := session.Shops()
	fmt.Printf("  Products:      %d\n", products.Len())
	fmt.Printf("  Shops:         %d\n", shops.Len())
	fmt.Printf("  Result rows:   %d\n", len(results))
	if encoded := query.FiltersToQuery(session.FilterState().Filters()).Encode(); encoded != "" {
		fmt.Printf("  Filters:       %s\n", encoded)
	}
	if recent := session.History().Recent(); len(recent) > 0 {
		queries := make([]string, 0, len(recent))
		for _, r := range recent {
			queries = append(queries, r.Query)
		}
		fmt.Printf("  Recent search: %s\n", strings.Join(queries, ", "))
	}
	fmt.Printf("  Duration:      %v\n", duration)
	fmt.Printf("  Output file:   %s\n", outputFile)
	fmt.Println(separator)
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
