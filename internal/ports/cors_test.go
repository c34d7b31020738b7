package ports_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Amund211/brawltools/internal/ports"
	"github.com/stretchr/testify/require"
)

const PROD_DOMAIN_SUFFIX = "brawltools.com"
const STAGING_DOMAIN_SUFFIX = "brawltools-web.pages.dev"

type originRule struct {
	origin  string
	allowed bool
}

func TestNewDomainSuffixes(t *testing.T) {
	t.Parallel()

	for _, invalid := range []string{".brawltools.com", "https://brawltools.com", "brawltools.com:443", "brawltools.com/app"} {
		t.Run(invalid, func(t *testing.T) {
			t.Parallel()

			_, err := ports.NewDomainSuffixes(invalid)
			require.Error(t, err)
		})
	}
}

func TestCORS(t *testing.T) {
	t.Parallel()
	allowedOrigins, err := ports.NewDomainSuffixes(
		PROD_DOMAIN_SUFFIX,
		STAGING_DOMAIN_SUFFIX,
	)
	require.NoError(t, err)

	cases := []originRule{
		// Prod
		{origin: "https://brawltools.com", allowed: true},
		{origin: "https://www.brawltools.com", allowed: true},
		// Staging
		{origin: "https://53bcd591.brawltools-web.pages.dev", allowed: true},
		{origin: "https://brawltools-web.pages.dev", allowed: true},
		// Other pages
		{origin: "example.com", allowed: false},
		{origin: "https://example.com", allowed: false},
		{origin: "https://www.google.com", allowed: false},
		// Similar-looking domains
		{origin: "https://brawl-tools.com", allowed: false},
		{origin: "https://mybrawltools.com", allowed: false},
		{origin: "https://www.mybrawltools.com", allowed: false},
		{origin: "https://superbrawltools-web.pages.dev", allowed: false},
		// Insecure
		{origin: "http://brawltools.com", allowed: false},
		{origin: "http://www.brawltools.com", allowed: false},
		// Weird cases
		{origin: "", allowed: false},
		{origin: "brawltools", allowed: false},
		{origin: "brawltools.com", allowed: false},
		{origin: "pages.dev", allowed: false},
	}

	runCORSTest := func(t *testing.T, handler http.HandlerFunc, method string, c originRule, handlerStatusCode int, handlerBody []byte) {
		req := httptest.NewRequest(method, "https://api-url.com", nil)
		req.Header.Set("Origin", c.origin)
		w := httptest.NewRecorder()

		handler(w, req)

		resp := w.Result()

		// The handler is allowed to run when the method is not OPTIONS
		if method != "OPTIONS" || !c.allowed {
			require.Equal(t, handlerStatusCode, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			require.Equal(t, handlerBody, body)
		}

		if c.allowed {
			require.Equal(t, c.origin, resp.Header.Get("Access-Control-Allow-Origin"))
			require.Equal(t, "Origin", resp.Header.Get("Vary"))

			if method == "OPTIONS" {
				require.Equal(t, http.StatusNoContent, resp.StatusCode)
				require.Equal(t, "GET", resp.Header.Get("Access-Control-Allow-Methods"))
				require.Equal(t, "X-User-Id", resp.Header.Get("Access-Control-Allow-Headers"))
				require.Equal(t, "3600", resp.Header.Get("Access-Control-Max-Age"))
			} else {
				require.Empty(t, resp.Header.Get("Access-Control-Allow-Methods"))
				require.Empty(t, resp.Header.Get("Access-Control-Allow-Headers"))
			}
		} else {
			require.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
			require.Empty(t, resp.Header.Get("Access-Control-Allow-Methods"))
			require.Empty(t, resp.Header.Get("Access-Control-Allow-Headers"))
		}
	}

	t.Run("BuildCORSMiddleware", func(t *testing.T) {
		t.Parallel()

		middleware := ports.BuildCORSMiddleware(allowedOrigins)

		handler := middleware(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(200)
				w.Write([]byte("Hello, world!"))
			},
		)

		for _, c := range cases {
			t.Run(fmt.Sprintf("Origin:'%s'", c.origin), func(t *testing.T) {
				t.Parallel()
				for _, method := range []string{"GET", "OPTIONS"} {
					t.Run(method, func(t *testing.T) {
						t.Parallel()

						runCORSTest(t, handler, method, c, 200, []byte("Hello, world!"))
					})
				}
			})
		}
	})

	t.Run("BuildCORSHandler", func(t *testing.T) {
		t.Parallel()

		handler := ports.BuildCORSHandler(allowedOrigins)

		for _, c := range cases {
			t.Run(fmt.Sprintf("Origin:'%s'", c.origin), func(t *testing.T) {
				t.Parallel()
				for _, method := range []string{"GET", "OPTIONS"} {
					t.Run(method, func(t *testing.T) {
						t.Parallel()

						runCORSTest(t, handler, method, c, 204, []byte{})
					})
				}
			})
		}
	})
}
