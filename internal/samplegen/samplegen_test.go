package samplegen_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/shopease/internal/adapters/extract"
	"github.com/okian/shopease/internal/adapters/http/api"
	service "github.com/okian/shopease/internal/app"
	"github.com/okian/shopease/internal/domain/review"
	"github.com/okian/shopease/internal/domain/types"
	"github.com/okian/shopease/internal/samplegen"
	"github.com/okian/shopease/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func smallConfig(dir string) samplegen.Config {
	return samplegen.Config{OutDir: dir, Products: 40, Sellers: 15, Cities: 4, Seed: 42, Timeout: 5 * time.Second}
}

func TestGenerate(t *testing.T) {
	Convey("Given a seeded config", t, func() {
		cfg := smallConfig("")

		Convey("Then the same seed yields the same dataset", func() {
			So(samplegen.Generate(cfg), ShouldResemble, samplegen.Generate(cfg))
		})

		Convey("Then every five-star band is populated", func() {
			res := samplegen.Expected(samplegen.Generate(cfg))
			So(res.EmptyBands(), ShouldBeEmpty)
			So(res.OutOfDomain, ShouldEqual, 1)
		})

		Convey("Then score files carry one malformed row past the well-formed ones", func() {
			ds := samplegen.Generate(cfg)
			So(ds.Products, ShouldHaveLength, cfg.Products+2)
			So(samplegen.Entities(ds.Products), ShouldHaveLength, cfg.Products+1)
		})

		Convey("Then small sizes still cover the anchor scores", func() {
			ds := samplegen.Generate(samplegen.Config{Products: 1, Sellers: 1, Seed: 7})
			So(samplegen.Expected(ds).EmptyBands(), ShouldBeEmpty)
			So(ds.Cities, ShouldHaveLength, 1)
		})
	})
}

func TestWrite(t *testing.T) {
	Convey("Given generated extracts on disk", t, func() {
		dir := filepath.Join(t.TempDir(), "data")
		cfg := smallConfig(dir)
		ds := samplegen.Generate(cfg)
		So(samplegen.Write(dir, ds), ShouldBeNil)

		src := extract.NewFileSource(dir)
		ctx := context.Background()

		Convey("Then the reader rejects only the malformed score row", func() {
			products, err := src.ProductScores(ctx)
			So(err, ShouldBeNil)
			So(products, ShouldHaveLength, cfg.Products+1)

			counts, ok := src.LastLoad(extract.ScorePerProduct)
			So(ok, ShouldBeTrue)
			So(counts.Rejected, ShouldEqual, 1)
		})

		Convey("Then the service summary matches the expected one", func() {
			svc := service.New(service.WithSource(src))
			got, err := svc.Bands(ctx, types.DatasetProducts, review.SetFive)
			So(err, ShouldBeNil)
			So(got.Summaries, ShouldResemble, samplegen.Expected(ds).Summaries)
		})

		Convey("Then every extract renders", func() {
			svc := service.New(service.WithSource(src))
			report, err := svc.Render(ctx, nil)
			So(err, ShouldBeNil)
			So(report.Sales.TopCities, ShouldNotBeEmpty)
		})

		Convey("Then stats report the rows kept and rejected per extract", func() {
			svc := service.New(service.WithSource(src))
			defer svc.Close()
			_, err := svc.Bands(ctx, types.DatasetProducts, review.SetFive)
			So(err, ShouldBeNil)

			st := svc.GetStats()
			So(st.Extracts[extract.ScorePerProduct], ShouldResemble, types.ExtractLoad{Loaded: cfg.Products + 1, Rejected: 1})
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a dashboard server over the output directory", t, func() {
		dir := t.TempDir()
		mux := http.NewServeMux()
		api.NewServer(service.New(service.WithDataDir(dir))).Register(mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("When running with verification", func() {
			cfg := smallConfig(dir)
			cfg.BaseURL = srv.URL
			_, err := samplegen.Run(context.Background(), &cfg)

			Convey("Then the served bands match the generated data", func() {
				So(err, ShouldBeNil)
			})
		})
	})

	Convey("Given no reachable server", t, func() {
		cfg := smallConfig(t.TempDir())
		cfg.BaseURL = "http://127.0.0.1:1"
		cfg.Timeout = time.Second

		Convey("Then the health check fails", func() {
			_, err := samplegen.Run(context.Background(), &cfg)
			So(errors.Is(err, samplegen.ErrUnhealthy), ShouldBeTrue)
		})
	})
}
