package ingest_test

import (
	"context"
	"errors"
	"strings"

	"tweetscope/internal/analysis"
	"tweetscope/internal/ingest"
	"tweetscope/internal/testhelpers"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Decode", func() {
	It("reads the saved export envelope", func() {
		tweets, err := ingest.Decode(strings.NewReader(`{"success":true,"data":{"tweets":[{"id":"1","text":"hi"}]}}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(tweets).To(HaveLen(1))
		Expect(tweets[0].Text).To(Equal("hi"))
	})

	It("reads a bare array", func() {
		tweets, err := ingest.Decode(strings.NewReader(`  [{"id":"1"},{"id":"2"}]`))
		Expect(err).NotTo(HaveOccurred())
		Expect(tweets).To(HaveLen(2))
	})

	It("rejects malformed input", func() {
		_, err := ingest.Decode(strings.NewReader(`{"data":`))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("TextFromHTML", func() {
	It("reads the paragraph of an embedded tweet", func() {
		text, err := ingest.TextFromHTML(`<blockquote><p>Hello   <a href="#">#golang</a></p>&mdash; Gopher</blockquote>`)
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("Hello #golang"))
	})

	It("falls back to the body text", func() {
		text, err := ingest.TextFromHTML("<div>plain\n text</div>")
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("plain text"))
	})
})

var _ = Describe("Importer", func() {
	var (
		ctx      context.Context
		saver    *fakeSaver
		importer *ingest.Importer
	)

	BeforeEach(func() {
		ctx = context.Background()
		saver = &fakeSaver{}
		importer = ingest.NewImporter(saver)
	})

	It("imports a saved export", func() {
		report, err := importer.ImportFile(ctx, testhelpers.FixturePath("saved_tweets.json"), "#golang")
		Expect(err).NotTo(HaveOccurred())
		Expect(*report).To(Equal(ingest.Report{Read: 3, Inserted: 2, Skipped: 1}))

		Expect(saver.rows).To(HaveLen(2))
		for _, row := range saver.rows {
			Expect(row.SearchHashtag).To(Equal("golang"))
		}
		Expect(saver.rows[1].Text()).To(Equal("Generics made my code worse & slower #golang"))
	})

	It("counts only new tweets as inserted", func() {
		_, err := importer.ImportFile(ctx, testhelpers.FixturePath("saved_tweets.json"), "golang")
		Expect(err).NotTo(HaveOccurred())

		report, err := importer.ImportFile(ctx, testhelpers.FixturePath("saved_tweets.json"), "golang")
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Inserted).To(BeZero())
	})

	It("requires a hashtag", func() {
		_, err := importer.Import(ctx, strings.NewReader(`[{"id":"1"}]`), "  ")
		Expect(err).To(MatchError(analysis.ErrInvalidHashtag))
	})

	It("rejects an empty export", func() {
		_, err := importer.Import(ctx, strings.NewReader(`[]`), "golang")
		Expect(err).To(MatchError(ingest.ErrEmptyExport))
	})

	It("fails on a missing file", func() {
		_, err := importer.ImportFile(ctx, "does-not-exist.json", "golang")
		Expect(err).To(HaveOccurred())
	})

	It("returns storage errors", func() {
		saver.err = errors.New("disk full")
		_, err := importer.Import(ctx, strings.NewReader(`[{"id":"1"}]`), "golang")
		Expect(err).To(MatchError("disk full"))
	})
})
