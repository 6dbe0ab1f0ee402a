// Package doppler provides a minimal client for the Doppler secrets API,
// as used by the secrets-fetch GitHub Action: it downloads the secrets of
// a config and exchanges a workload identity token for a short-lived
// service token.
//
// Failed requests are retried with full-jitter exponential backoff when
// the failure looks transient (rate limiting, informational statuses,
// non-JSON 5xx responses from upstream infrastructure); application-level
// errors fail fast.
//
// Basic usage:
//
//	client, err := doppler.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	secrets, err := client.FetchSecrets(ctx, token,
//	    doppler.WithProject("backend"),
//	    doppler.WithConfig("prd"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(secrets["DATABASE_URL"].Computed)
package doppler
