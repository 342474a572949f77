//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mm

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// the hub loops forever on package-level channels; start it exactly once for all tests
var hubonce sync.Once

func starthub() {
	hubonce.Do(func() { go PathInfoHub() })
}

// snapshot - ask the hub for the current counts
func snapshot() map[string]int {
	responder := PIReply{req: true, response: make(chan map[string]int)}
	PIRequest <- responder
	return <-responder.response
}

// waitforcount - poll until the hub shows at least n hits for fn; updates and requests ride separate channels
func waitforcount(t *testing.T, fn string, n int) map[string]int {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		ctr := snapshot()
		if ctr[fn] >= n {
			return ctr
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("hub never reported %d hit(s) for '%s'", n, fn)
	return nil
}

func TestPathInfoHubSnapshotIsolation(t *testing.T) {
	const (
		FN = "RtFrequencies()"
	)

	starthub()

	// [a] one hit lands
	PIUpdate <- FN
	first := waitforcount(t, FN, 1)
	was := first[FN]

	// [b] two more hits land after the first snapshot was taken
	PIUpdate <- FN
	PIUpdate <- FN
	second := waitforcount(t, FN, was+2)

	// [c] the first snapshot must be a copy, not a view of the live counter
	if first[FN] != was {
		t.Errorf("earlier snapshot mutated: had %d hits for '%s', now shows %d", was, FN, first[FN])
	}
	if second[FN] < was+2 {
		t.Errorf("later snapshot shows %d hits for '%s'; expected at least %d", second[FN], FN, was+2)
	}
}

func TestPathInfoHubConcurrentReaders(t *testing.T) {
	starthub()

	done := make(chan struct{})
	var wg sync.WaitGroup

	// hammer the hub with updates while a reader ranges over requested maps
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		for {
			select {
			case <-done:
				return
			case PIUpdate <- fmt.Sprintf("RtBusyRoute%d()", i%8):
				i++
			}
		}
	}()

	for i := 0; i < 250; i++ {
		ctr := snapshot()
		total := 0
		for k := range ctr {
			total += ctr[k]
		}
		if total < 0 {
			t.Fatal("impossible negative hit total")
		}
	}

	close(done)
	wg.Wait()
}
