// Package zefix provides types, interfaces, and helpers for working with the
// ZEFIX public REST API of the Swiss central business name index.
//
// # Overview
//
// The zefix package defines the domain types (Company, CompanyFull,
// LegalForm, SOGCPublication, ...) and the interfaces of the resource
// clients. A concrete client is provided by the zefixclient package, which
// wires configuration, transport and the request Gate:
//
//	cli, err := zefixclient.New(ctx, &zefix.Config{
//	  Auth:     &zefix.BasicAuth{Username: "user", Password: "secret"},
//	  Throttle: &zefix.ThrottleConfig{MinInterval: 500 * time.Millisecond},
//	})
//	if err != nil { log.Fatal(err) }
//
//	companies, err := cli.Companies().GetByUID(ctx, "CHE-105.805.080")
//
// # The request Gate
//
// Every request passes a Gate before it is sent. The Gate adds the Basic
// Authorization header and holds the request back until the configured
// minimum interval has passed since the previous request of the same client.
// Gate.Decorate can also be used on its own with any transport.
//
// # Errors
//
// Non-2xx responses are returned as *HTTPError. Its headers never contain
// credentials: Authorization values are replaced with Redacted when the
// error is built. IsNotFound, IsUnauthorized, IsForbidden and
// IsTooManyRequests branch on common cases.
//
// UIDs are parsed by package uid; see there for the accepted forms.
package zefix
