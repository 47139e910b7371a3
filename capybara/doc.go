// Package capybara is the HTTP client for CapybaraDB. It owns the
// transport concerns the core package deliberately excludes: endpoint
// construction, authentication headers, request issuing, and optional
// retries and telemetry.
//
// # Client and Collections
//
// Create a client with an API key and project ID, then address data
// through database and collection handles:
//
//	client, err := capybara.New(apiKey, projectID)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	col := client.Database("my_database").Collection("my_collection")
//
// [NewFromEnv] reads CAPYBARA_API_KEY and CAPYBARA_PROJECT_ID instead.
// Handles are cheap and make no requests; databases and collections
// are created lazily on first write.
//
// # Operations
//
// Collections expose Insert, Update, and Delete directly, and Find and
// Query as fluent builders:
//
//	saved, err := col.Insert(ctx, []core.Document{doc})
//
//	matches, err := col.Query("how do capybaras sleep?").
//	    TopK(5).
//	    Run(ctx)
//
// Insert transforms every document with [core.Transform] before
// sending, so media objects reach the service in wire form. Update
// transforms only the update document.
//
// # Errors
//
// Service failures surface as [core.APIError] values wrapping the core
// sentinels; check them with errors.Is:
//
//	if errors.Is(err, core.ErrAuthentication) {
//	    // bad or missing API key
//	}
//
// The client performs no retries by default. Opt in with
// [WithRetryPolicy]; [DefaultRetryPolicy] retries network and server
// errors with exponential backoff.
//
// # Telemetry
//
// [WithTelemetry] installs a [TelemetryHook] that observes request
// lifecycle events. Events carry operation, database, collection,
// status, and timing only; never document content or credentials.
package capybara
