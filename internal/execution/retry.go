package execution

import "time"

// pollUntil retries query until it reports a match, up to attempts, waiting
// interval between attempts. The world propagates mutations asynchronously,
// so a single immediate read can observe stale state. Returns the last
// observed value whether or not it matched; the caller does the final
// comparison and failure reporting.
func pollUntil(attempts int, interval time.Duration, query func() (value string, match bool, err error)) (string, bool, error) {
	if attempts < 1 {
		attempts = 1
	}
	var value string
	for i := 0; i < attempts; i++ {
		v, ok, err := query()
		if err != nil {
			return v, false, err
		}
		value = v
		if ok {
			return value, true, nil
		}
		if i < attempts-1 {
			time.Sleep(interval)
		}
	}
	return value, false, nil
}
