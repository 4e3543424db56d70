package cli_test

import (
	"bytes"
	"context"

	"tweetscope/internal/cli"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Root command", func() {
	It("registers every subcommand", func() {
		var names []string
		for _, c := range cli.Root().Commands() {
			names = append(names, c.Name())
		}
		Expect(names).To(ContainElements("analyze", "collect", "import", "migrate", "train"))
	})

	It("validates arguments before touching the database", func() {
		root := cli.Root()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs([]string{"analyze"})
		DeferCleanup(func() { root.SetArgs(nil) })

		err := root.ExecuteContext(context.Background())
		Expect(err).To(MatchError(ContainSubstring("accepts 1 arg(s)")))
	})

	It("requires --hashtag on import", func() {
		root := cli.Root()
		root.SetArgs([]string{"import", "tweets.json"})
		DeferCleanup(func() { root.SetArgs(nil) })

		err := root.ExecuteContext(context.Background())
		Expect(err).To(MatchError(ContainSubstring(`"hashtag" not set`)))
	})
})
