// Package dataservice sends text and voice queries to the natural language
// understanding service and returns structured responses.
//
// # Basic Usage
//
//	cfg := core.NewConfiguration(os.Getenv("DIALOG_ACCESS_TOKEN"), core.LanguageEnglish)
//	svc, err := dataservice.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	resp, err := svc.TextQuery(ctx, "Hello", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp.Result.Fulfillment.Speech)
//
// # Voice Queries
//
// VoiceQuery uploads audio as a multipart body with a "request" field holding
// the JSON query and a "voiceData" file named voice.wav. The reader is
// streamed, not buffered:
//
//	f, _ := os.Open("hello.wav")
//	defer f.Close()
//	resp, err := svc.VoiceQuery(ctx, f, nil)
//
// # Sessions
//
// Each Service belongs to one session. Pass WithServiceContext to continue an
// existing conversation; otherwise a session id is generated. ResetContexts
// clears server-side context state and reports success as a bool.
//
// # Errors
//
// Every error is a *core.Error. Use errors.Is with the core sentinels
// (core.ErrServiceError, core.ErrServiceUnavailable, ...) to classify it.
// No call is retried.
//
// # Logging
//
// The service is silent by default. WithLogger attaches a zerolog logger;
// request and response bodies are logged at debug level on a single line.
package dataservice
