// Command authcore-loadtest exercises the in-memory session store under
// concurrency: it seeds a population of sessions, then hammers them with
// mixed validate and refresh operations from many workers and reports
// throughput and latency percentiles per phase.
//
// Usage:
//
//	go run ./cmd/authcore-loadtest -sessions 100000 -concurrency 256 -ops 200000
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hexauth/authcore/session"
)

type sessionState struct {
	mu      sync.Mutex
	token   string
	refresh string
}

func main() {
	var (
		sessions    = flag.Int("sessions", 100000, "number of sessions to seed")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 200000, "operations per phase (validate + refresh)")
	)
	flag.Parse()

	if *sessions <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "sessions, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	store := session.NewStore(session.Config{})

	states := make([]*sessionState, *sessions)
	fmt.Printf("seeding %d sessions...\n", *sessions)
	startSeed := time.Now()
	for i := range states {
		sess, err := store.Create(session.Identity{
			SubjectID: fmt.Sprintf("user-%d", i),
			Username:  fmt.Sprintf("user-%d", i),
		}, []string{"user"})
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed: %v\n", err)
			os.Exit(1)
		}
		states[i] = &sessionState{token: sess.Token, refresh: sess.RefreshToken}
	}
	fmt.Printf("seeded in %s (%d live)\n", time.Since(startSeed).Round(time.Millisecond), store.Len())

	runPhase("validate", *ops, *concurrency, func(rng *rand.Rand) error {
		st := states[rng.Intn(len(states))]
		st.mu.Lock()
		token := st.token
		st.mu.Unlock()
		if _, ok := store.Get(token); !ok {
			return fmt.Errorf("live session missing")
		}
		return nil
	})

	runPhase("refresh", *ops, *concurrency, func(rng *rand.Rand) error {
		st := states[rng.Intn(len(states))]
		st.mu.Lock()
		defer st.mu.Unlock()
		sess, err := store.Rotate(st.token, st.refresh)
		if err != nil {
			return err
		}
		st.token = sess.Token
		st.refresh = sess.RefreshToken
		return nil
	})

	fmt.Printf("final live sessions: %d\n", store.Len())
}

func runPhase(name string, ops, concurrency int, op func(*rand.Rand) error) {
	fmt.Printf("phase %s: %d ops across %d workers\n", name, ops, concurrency)

	var (
		wg        sync.WaitGroup
		remaining = int64(ops)
		failures  int64
		latMu     sync.Mutex
		latencies = make([]time.Duration, 0, ops)
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			local := make([]time.Duration, 0, ops/concurrency+1)
			for atomic.AddInt64(&remaining, -1) >= 0 {
				t0 := time.Now()
				if err := op(rng); err != nil {
					atomic.AddInt64(&failures, 1)
				}
				local = append(local, time.Since(t0))
			}
			latMu.Lock()
			latencies = append(latencies, local...)
			latMu.Unlock()
		}(int64(w) + 1)
	}
	wg.Wait()
	elapsed := time.Since(start)

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	fmt.Printf("  %.0f ops/sec, failures=%d, p50=%s p99=%s max=%s\n",
		float64(ops)/elapsed.Seconds(), failures,
		percentile(latencies, 0.50), percentile(latencies, 0.99), latencies[len(latencies)-1])
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}
