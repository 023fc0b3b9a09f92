// Command ersbench builds a random point database, indexes it under a chosen scheme, and reports
// index size and average trapdoor/search/resolve timings over a batch of random range queries.
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"github.com/cloudsecuritygroup/ers/geometry"
	"github.com/cloudsecuritygroup/ers/schemes/linear"
	"github.com/cloudsecuritygroup/ers/schemes/qdagsrc"
	"github.com/cloudsecuritygroup/ers/schemes/quadbrc"
	"github.com/cloudsecuritygroup/ers/schemes/rangebrc"
	"github.com/cloudsecuritygroup/ers/schemes/tdagsrc"
)

const payloadLength = 10

func main() {
	scheme := flag.String("scheme", "quad_brc", "scheme to benchmark: linear, range_brc, quad_brc, tdag_src, qdag_src")
	bound := flag.Int64("bound", 64, "domain is [0,bound) x [0,bound)")
	numPoints := flag.Int("points", 500, "number of indexed points")
	numQueries := flag.Int("queries", 50, "number of random queries to run")
	flag.Parse()

	mm, maxX, maxY := generateRandomDatabase(*bound, *bound, *numPoints)

	var (
		storageBytes int
		queryGenNS   []int64
		searchNS     []int64
		resolveNS    []int64
		resultCounts []int
	)

	build := func() {
		log.Printf("building %s index over %d points in [0,%d)x[0,%d)", *scheme, *numPoints, maxX, maxY)
	}

	switch *scheme {
	case "linear":
		s := linear.New(maxX, maxY)
		key, err := s.Setup(16)
		must(err)
		build()
		must(s.BuildIndex(key, mm))
		storageBytes = dbSize(s.EncryptedDB())

		bar := progressbar.Default(int64(*numQueries))
		for i := 0; i < *numQueries; i++ {
			p1, p2 := generateRandomQuery(maxX, maxY)
			t0 := time.Now()
			tokens, err := s.Trapdoor(key, p1, p2)
			must(err)
			queryGenNS = append(queryGenNS, time.Since(t0).Nanoseconds())

			t0 = time.Now()
			results := s.Search(tokens)
			searchNS = append(searchNS, time.Since(t0).Nanoseconds())

			t0 = time.Now()
			resolved, err := s.Resolve(key, results)
			must(err)
			resolveNS = append(resolveNS, time.Since(t0).Nanoseconds())

			resultCounts = append(resultCounts, len(resolved))
			_ = bar.Add(1)
		}

	case "range_brc":
		s := rangebrc.New(maxX, maxY)
		key, err := s.Setup(16)
		must(err)
		build()
		must(s.BuildIndex(key, mm))
		storageBytes = dbSize(s.EncryptedDB())

		bar := progressbar.Default(int64(*numQueries))
		for i := 0; i < *numQueries; i++ {
			p1, p2 := generateRandomQuery(maxX, maxY)
			t0 := time.Now()
			tokens, err := s.Trapdoor(key, p1, p2)
			must(err)
			queryGenNS = append(queryGenNS, time.Since(t0).Nanoseconds())

			t0 = time.Now()
			results := s.Search(tokens)
			searchNS = append(searchNS, time.Since(t0).Nanoseconds())

			t0 = time.Now()
			resolved, err := s.Resolve(key, results)
			must(err)
			resolveNS = append(resolveNS, time.Since(t0).Nanoseconds())

			resultCounts = append(resultCounts, len(resolved))
			_ = bar.Add(1)
		}

	case "quad_brc":
		s := quadbrc.New(maxX, maxY)
		key, err := s.Setup(16)
		must(err)
		build()
		must(s.BuildIndex(key, mm))
		storageBytes = dbSize(s.EncryptedDB())

		bar := progressbar.Default(int64(*numQueries))
		for i := 0; i < *numQueries; i++ {
			p1, p2 := generateRandomQuery(maxX, maxY)
			t0 := time.Now()
			tokens, err := s.Trapdoor(key, p1, p2)
			must(err)
			queryGenNS = append(queryGenNS, time.Since(t0).Nanoseconds())

			t0 = time.Now()
			results := s.Search(tokens)
			searchNS = append(searchNS, time.Since(t0).Nanoseconds())

			t0 = time.Now()
			resolved, err := s.Resolve(key, results)
			must(err)
			resolveNS = append(resolveNS, time.Since(t0).Nanoseconds())

			resultCounts = append(resultCounts, len(resolved))
			_ = bar.Add(1)
		}

	case "tdag_src":
		s := tdagsrc.New(maxX, maxY)
		key, err := s.Setup(16)
		must(err)
		build()
		must(s.BuildIndex(key, mm))
		storageBytes = dbSize(s.EncryptedDB())

		bar := progressbar.Default(int64(*numQueries))
		for i := 0; i < *numQueries; i++ {
			p1, p2 := generateRandomQuery(maxX, maxY)
			t0 := time.Now()
			token, err := s.Trapdoor(key, p1, p2)
			must(err)
			queryGenNS = append(queryGenNS, time.Since(t0).Nanoseconds())

			t0 = time.Now()
			results := s.Search(token)
			searchNS = append(searchNS, time.Since(t0).Nanoseconds())

			t0 = time.Now()
			resolved, err := s.Resolve(key, results)
			must(err)
			resolveNS = append(resolveNS, time.Since(t0).Nanoseconds())

			resultCounts = append(resultCounts, len(resolved))
			_ = bar.Add(1)
		}

	case "qdag_src":
		s := qdagsrc.New(maxX, maxY)
		key, err := s.Setup(16)
		must(err)
		build()
		must(s.BuildIndex(key, mm))
		storageBytes = dbSize(s.EncryptedDB())

		bar := progressbar.Default(int64(*numQueries))
		for i := 0; i < *numQueries; i++ {
			p1, p2 := generateRandomQuery(maxX, maxY)
			t0 := time.Now()
			token, err := s.Trapdoor(key, p1, p2)
			must(err)
			queryGenNS = append(queryGenNS, time.Since(t0).Nanoseconds())

			t0 = time.Now()
			results := s.Search(token)
			searchNS = append(searchNS, time.Since(t0).Nanoseconds())

			t0 = time.Now()
			resolved, err := s.Resolve(key, results)
			must(err)
			resolveNS = append(resolveNS, time.Since(t0).Nanoseconds())

			resultCounts = append(resultCounts, len(resolved))
			_ = bar.Add(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "unknown scheme %q\n", *scheme)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("index size:     %s\n", humanize.Bytes(uint64(storageBytes)))
	fmt.Printf("avg trapdoor:   %s\n", humanize.SIWithDigits(average(queryGenNS), 2, "ns"))
	fmt.Printf("avg search:     %s\n", humanize.SIWithDigits(average(searchNS), 2, "ns"))
	fmt.Printf("avg resolve:    %s\n", humanize.SIWithDigits(average(resolveNS), 2, "ns"))
	fmt.Printf("avg result set: %.2f documents\n", averageInt(resultCounts))
}

func dbSize(db map[string][]byte) int {
	n := 0
	for k, v := range db {
		n += len(k) + len(v)
	}
	return n
}

func average(samples []int64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum int64
	for _, s := range samples {
		sum += s
	}
	return float64(sum) / float64(len(samples))
}

func averageInt(samples []int) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0
	for _, s := range samples {
		sum += s
	}
	return float64(sum) / float64(len(samples))
}

func generateRandomDatabase(boundX, boundY int64, numElts int) (map[geometry.Point][][]byte, int64, int64) {
	mm := make(map[geometry.Point][][]byte)
	var maxX, maxY int64
	for i := 0; i < numElts; i++ {
		p := geometry.Point{X: randInt63n(boundX), Y: randInt63n(boundY)}
		payload := make([]byte, payloadLength)
		_, _ = rand.Read(payload)
		mm[p] = append(mm[p], payload)
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return mm, nextPowerOf2(maxX + 1), nextPowerOf2(maxY + 1)
}

func generateRandomQuery(boundX, boundY int64) (geometry.Point, geometry.Point) {
	p1 := geometry.Point{X: randInt63n(boundX), Y: randInt63n(boundY)}
	p2 := geometry.Point{X: randInt63n(boundX), Y: randInt63n(boundY)}
	return geometry.NormalizeQuery(p1, p2)
}

func randInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	must(err)
	return v.Int64()
}

func nextPowerOf2(x int64) int64 {
	if x <= 1 {
		return 1
	}
	p := int64(1)
	for p < x {
		p <<= 1
	}
	return p
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
