// Package core provides the types shared by the dialog SDK: configuration,
// session context, query requests, responses and the unified error type.
//
// The data service itself lives in package dataservice; core contains no
// network code.
//
// # Configuration
//
// A [Configuration] carries the access token, query language, endpoint root,
// optional proxy and the sound-log switch:
//
//	cfg := core.NewConfiguration(os.Getenv("DIALOG_ACCESS_TOKEN"), core.LanguageEnglish,
//	    core.WithProxy(proxyURL),
//	)
//
// Services clone the configuration when they are created. Mutating cfg
// afterwards does not affect an existing service.
//
// # Sessions
//
// A [ServiceContext] holds the session id that scopes server-side context
// state. Pass an empty id to [NewServiceContext] to generate one.
//
// # Requests and Extras
//
// [Request] is the serialized query payload. [RequestExtras] bundles optional
// contexts, entities, a location and extra HTTP headers that the service merges
// into each request:
//
//	extras := &core.RequestExtras{
//	    Contexts: []core.Context{core.NewContext("weather").WithLifespan(2)},
//	    Location: &core.Location{Latitude: 37.45, Longitude: -122.16},
//	}
//
// # Error Handling
//
// Every failure is an [*Error] whose [Kind] names the cause:
//   - [KindInvalidArgument]: nil request, empty entity list
//   - [KindEmptyResponse]: the service returned no body
//   - [KindMalformedResponse]: the body was not a JSON object
//   - [KindServiceError]: the service returned an error status
//   - [KindServiceUnavailable]: the service could not be reached
//
// Each kind has a sentinel so callers can use errors.Is:
//
//	if errors.Is(err, core.ErrServiceError) {
//	    var e *core.Error
//	    errors.As(err, &e)
//	    log.Printf("status %d: %s", e.Code(), e.ErrorDetails())
//	}
//
// # Thread Safety
//
// [Configuration] values are cloned and never mutated by the SDK.
// [ServiceContext] is immutable. [Request] and [RequestExtras] belong to a
// single call and must not be shared while a call is in flight.
package core
