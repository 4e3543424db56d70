package analysis_test

import (
	"encoding/json"
	"strings"

	"tweetscope/internal/analysis"
	"tweetscope/internal/models"
	"tweetscope/internal/testhelpers"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BotDetector", func() {
	var detector *analysis.BotDetector

	zero := map[string]int{"retweet_count": 0, "reply_count": 0}

	BeforeEach(func() {
		detector = analysis.NewBotDetector(analysis.DefaultBotRules())
	})

	It("flags a link and mention spammer without engagement", func() {
		tweet := testhelpers.NewTweet("1", "x",
			"Check this out http://x.co http://y.co http://z.co @a @b @c @d #x #y #z #m #n #k", zero)

		indicators, err := detector.Indicators(&tweet)
		Expect(err).NotTo(HaveOccurred())
		Expect(indicators).To(Equal([]bool{true, true, true, false, false}))
		Expect(detector.IsBot(&tweet)).To(BeTrue())
	})

	It("needs more than two links for the link indicator", func() {
		tweet := testhelpers.NewTweet("1", "x",
			"Check this out http://x.co http://y.co @a @b @c @d #x #y #z #m #n #k", zero)

		Expect(detector.IsBot(&tweet)).To(BeFalse())
	})

	It("treats absent metrics as zero engagement", func() {
		tweet := testhelpers.NewTweet("1", "x", "@a @b @c @d follow follow follow", nil)

		indicators, err := detector.Indicators(&tweet)
		Expect(err).NotTo(HaveOccurred())
		Expect(indicators).To(Equal([]bool{true, false, true, false, true}))
		Expect(detector.IsBot(&tweet)).To(BeTrue())
	})

	It("does not flag an engaged human", func() {
		tweet := testhelpers.NewTweet("1", "x", "@a @b @c @d great thread, thanks", testhelpers.Engaged())
		Expect(detector.IsBot(&tweet)).To(BeFalse())
	})

	It("fires the long-content indicator only with many hashtags", func() {
		long := strings.Repeat("a", 270) + " #a #b #c #d #e #f"
		tweet := testhelpers.NewTweet("1", "x", long, testhelpers.Engaged())

		indicators, err := detector.Indicators(&tweet)
		Expect(err).NotTo(HaveOccurred())
		Expect(indicators[3]).To(BeTrue())
	})

	It("counts characters, not bytes, for content length", func() {
		content := strings.Repeat("é", 200) + " #a #b #c #d #e #f"
		tweet := testhelpers.NewTweet("1", "x", content, testhelpers.Engaged())

		indicators, err := detector.Indicators(&tweet)
		Expect(err).NotTo(HaveOccurred())
		Expect(indicators[3]).To(BeFalse())
	})

	It("returns false for malformed metrics", func() {
		tweet := testhelpers.NewTweet("1", "x", "@a @b @c @d follow follow follow", nil)
		tweet.Metrics = json.RawMessage(`{"retweet_count": "lots"}`)

		_, err := detector.Indicators(&tweet)
		Expect(err).To(HaveOccurred())
		Expect(detector.IsBot(&tweet)).To(BeFalse())
	})

	It("ignores metrics keys it does not read", func() {
		tweet := testhelpers.NewTweet("1", "x", "@a @b @c @d follow follow follow", nil)
		tweet.Metrics = json.RawMessage(`{"retweet_count":0,"reply_count":0,"source":"web"}`)

		indicators, err := detector.Indicators(&tweet)
		Expect(err).NotTo(HaveOccurred())
		Expect(indicators).To(Equal([]bool{true, false, true, false, true}))
		Expect(detector.IsBot(&tweet)).To(BeTrue())
	})

	It("treats null counters as zero", func() {
		tweet := testhelpers.NewTweet("1", "x", "@a @b @c @d follow follow follow", nil)
		tweet.Metrics = json.RawMessage(`{"retweet_count":null,"like_count":7}`)

		Expect(detector.IsBot(&tweet)).To(BeTrue())
	})

	It("returns false for a nil tweet", func() {
		Expect(detector.IsBot(nil)).To(BeFalse())
	})

	It("handles absent content", func() {
		tweet := models.Tweet{TweetID: "1"}
		indicators, err := detector.Indicators(&tweet)
		Expect(err).NotTo(HaveOccurred())
		Expect(indicators).To(Equal([]bool{false, false, true, false, false}))
	})

	Describe("engagement bait rule", func() {
		It("is off by default", func() {
			tweet := testhelpers.NewTweet("1", "x", "like and retweet", zero)
			indicators, err := detector.Indicators(&tweet)
			Expect(err).NotTo(HaveOccurred())
			Expect(indicators).To(HaveLen(5))
		})

		It("adds a sixth indicator when enabled", func() {
			rules := analysis.DefaultBotRules()
			rules.EngagementBait = true
			detector = analysis.NewBotDetector(rules)

			tweet := testhelpers.NewTweet("1", "x", "Please LIKE and RETWEET @a @b @c @d", zero)
			indicators, err := detector.Indicators(&tweet)
			Expect(err).NotTo(HaveOccurred())
			Expect(indicators).To(Equal([]bool{true, false, true, false, false, true}))
			Expect(detector.IsBot(&tweet)).To(BeTrue())
		})
	})
})
