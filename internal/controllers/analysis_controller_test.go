package controllers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"tweetscope/internal/analysis"
	"tweetscope/internal/controllers"
	"tweetscope/internal/models"
	"tweetscope/internal/store"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AnalysisController", func() {
	var (
		analyzer *fakeAnalyzer
		results  *fakeResults
		router   *gin.Engine
	)

	BeforeEach(func() {
		analyzer = &fakeAnalyzer{}
		results = &fakeResults{}

		ac := controllers.AnalysisController{Analyzer: analyzer, Results: results}
		router = gin.New()
		router.POST("/analyze/:hashtag", ac.AnalyzeHashtag)
		router.GET("/analyses/:hashtag", ac.GetAnalysis)
		router.GET("/evaluations/latest", ac.GetLatestEvaluation)
	})

	serve := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	Describe("AnalyzeHashtag", func() {
		It("returns the summary", func() {
			analyzer.result = &analysis.Result{Summary: &analysis.Summary{Hashtag: "golang", TotalTweets: 2}}

			rec := serve(http.MethodPost, "/analyze/golang")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(analyzer.got).To(Equal("golang"))

			var body map[string]any
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["success"]).To(BeTrue())
			Expect(body).NotTo(HaveKey("warning"))
			Expect(body["data"]).To(HaveKeyWithValue("total_tweets", BeNumerically("==", 2)))
		})

		It("passes through the unsaved warning", func() {
			analyzer.result = &analysis.Result{Summary: &analysis.Summary{Hashtag: "golang"}, Warning: analysis.UnsavedWarning}

			rec := serve(http.MethodPost, "/analyze/golang")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(analysis.UnsavedWarning))
		})

		It("answers 404 when no tweets match", func() {
			analyzer.err = analysis.ErrNoTweets

			rec := serve(http.MethodPost, "/analyze/golang")
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(rec.Body.String()).To(MatchJSON(`{"success":false,"error":"No tweets found for analysis"}`))
		})

		It("answers 500 with the error message", func() {
			analyzer.err = errors.New("database unavailable")

			rec := serve(http.MethodPost, "/analyze/golang")
			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
			Expect(rec.Body.String()).To(MatchJSON(`{"success":false,"error":"database unavailable"}`))
		})
	})

	Describe("GetAnalysis", func() {
		It("returns the stored analysis", func() {
			results.analysis = &models.TweetAnalysis{
				Hashtag:      "golang",
				AnalysisDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
				Results:      json.RawMessage(`{"total_tweets":2}`),
			}

			rec := serve(http.MethodGet, "/analyses/golang")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON(`{
				"success": true,
				"data": {"hashtag":"golang","analysis_date":"2025-07-01T00:00:00Z","results":{"total_tweets":2}}
			}`))
		})

		It("answers 404 for an unknown hashtag", func() {
			results.err = store.ErrNotFound

			rec := serve(http.MethodGet, "/analyses/golang")
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GetLatestEvaluation", func() {
		It("returns the latest evaluation", func() {
			results.evaluation = &models.ModelEvaluation{RunID: "run-1", BestModel: "svm", Results: json.RawMessage(`{}`)}

			rec := serve(http.MethodGet, "/evaluations/latest")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`"best_model":"svm"`))
		})

		It("answers 404 before the first run", func() {
			results.err = store.ErrNotFound

			rec := serve(http.MethodGet, "/evaluations/latest")
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(rec.Body.String()).To(MatchJSON(`{"success":false,"error":"No model evaluation found"}`))
		})

		It("hides storage errors", func() {
			results.err = errors.New("pq: connection refused")

			rec := serve(http.MethodGet, "/evaluations/latest")
			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
			Expect(rec.Body.String()).NotTo(ContainSubstring("pq:"))
		})
	})
})

var _ = Describe("AnalysisOutcome", func() {
	It("maps an invalid hashtag to 400", func() {
		status, body := controllers.AnalysisOutcome(nil, analysis.ErrInvalidHashtag)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body.Error).To(Equal("Hashtag is required"))
	})
})
