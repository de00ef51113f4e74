package api

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/brianvoe/gofakeit/v7"

	"github.com/oaiiae/address-book/datastores"
	"github.com/oaiiae/address-book/handlers"
	"github.com/oaiiae/address-book/router"
)

type ServerOptions struct {
	Host              string        `short:"H" doc:"host to listen on"                    default:""`
	Port              string        `short:"p" doc:"port to listen on"                    default:"8888"`
	ReadHeaderTimeout time.Duration `          doc:"time allowed to read request headers" default:"15s"`
}

func NewServer(options *ServerOptions, handler http.Handler, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              options.Host + ":" + options.Port,
		ReadHeaderTimeout: options.ReadHeaderTimeout,
		Handler:           handler,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

type RouterOptions struct {
	EndpointsPrefix string `doc:"mount endpoints at a prefix"                default:"/api"`
	Seed            int    `doc:"number of fake contacts created at startup" default:"0"`
}

func NewRouter(
	options *RouterOptions,
	title string,
	version string,
	revision string,
	created string,
	logger *slog.Logger,
) http.Handler {
	buildinfoMetric := joinQuote("build_info{goversion=", runtime.Version(),
		",title=", title,
		",version=", version,
		",revision=", revision,
		",created=", created,
		"} 1\n")

	if options.Seed < 0 {
		logger.Warn("could not seed a negative number of contacts", "seed", options.Seed)
		options.Seed = 0
	}
	store := datastores.NewContactsInmem(fakeContacts(options.Seed)...)
	logger.Debug("contacts store ready", "contacts", store.Len())

	metriks := metrics.NewSet()
	metriks.NewGauge("contacts", func() float64 { return float64(store.Len()) })

	return router.New(title, version,
		func(_ http.ResponseWriter, _ *http.Request) {},
		func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, buildinfoMetric)
			metriks.WritePrometheus(w)
			metrics.WriteProcessMetrics(w)
		},
		router.OptUseMiddleware(
			ctxlog{}.loggerMiddleware(logger),
			meterRequests(metriks),
			ctxlog{}.recoverMiddleware(logger),
		),
		router.OptGroup(options.EndpointsPrefix,
			router.OptGroup("/contacts", router.OptAutoRegister(&handlers.Contacts{
				Store:        store,
				ErrorHandler: ctxlog{}.errorHandler(logger),
			})),
		),
	)
}

// fakeContacts returns n contacts filled with random data.
func fakeContacts(n int) []*datastores.Contact {
	faker := gofakeit.New(rand.Uint64())
	contacts := make([]*datastores.Contact, 0, n)
	for range n {
		contact := datastores.NewContact(faker.FirstName(), faker.LastName())
		for range faker.IntRange(1, 3) { //nolint: mnd // arbitrary
			contact.AddAddress(faker.Address().Address)
		}
		contacts = append(contacts, contact)
	}
	return contacts
}

// joinQuote is [strings.Join] with " as separator.
func joinQuote(elems ...string) string { return strings.Join(elems, `"`) }

// joinSpace is [strings.Join] with space as separator.
func joinSpace(elems ...string) string { return strings.Join(elems, ` `) }
