package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"

	"github.com/codearena/backend/auth"
	"github.com/codearena/backend/battle"
	"github.com/codearena/backend/dispatch"
	"github.com/codearena/backend/question"
)

type HttpServer struct {
	dispSrvc     *dispatch.DispatchSrvc
	battleSrvc   *battle.BattleSrvc
	questionSrvc *question.QuestionSrvc
	router       *chi.Mux
}

func NewHttpServer(
	dispSrvc *dispatch.DispatchSrvc,
	battleSrvc *battle.BattleSrvc,
	questionSrvc *question.QuestionSrvc,
	jwtKey []byte,
) *HttpServer {
	router := chi.NewRouter()

	logger := httplog.NewLogger("codearena", httplog.Options{
		LogLevel:         slog.LevelDebug,
		Concise:          true,
		RequestHeaders:   true,
		MessageFieldName: "message",
	})

	router.Use(httplog.RequestLogger(logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           3000,
	}))

	router.Use(auth.GetJwtAuthMiddleware(jwtKey))

	server := &HttpServer{
		dispSrvc:     dispSrvc,
		battleSrvc:   battleSrvc,
		questionSrvc: questionSrvc,
		router:       router,
	}

	server.routes()

	return server
}

func (httpserver *HttpServer) Start(address string) error {
	return http.ListenAndServe(address, httpserver.router)
}

func (httpserver *HttpServer) Router() http.Handler {
	return httpserver.router
}

func (httpserver *HttpServer) routes() {
	r := httpserver.router

	r.Route("/code", func(r chi.Router) {
		r.Post("/run", httpserver.codeRun)
		r.Post("/question-run", httpserver.codeQuestionRun)
		r.Post("/question-submit", httpserver.codeQuestionSubmit)
		r.Get("/status/{id}", httpserver.codeStatus)
	})

	r.Route("/battle", func(r chi.Router) {
		r.Post("/create-battle", httpserver.battleCreate)
		r.Post("/join-battle", httpserver.battleJoin)
		r.Post("/start-battle", httpserver.battleStart)
		r.Post("/remove-user", httpserver.battleRemoveUser)
		r.Post("/update-submission", httpserver.battleUpdateSubmission)
		r.Get("/status", httpserver.battleStatus)
		r.Get("/get-details-by-id", httpserver.battleDetails)
		r.Get("/get-public-battles", httpserver.battlePublic)
	})

	r.Route("/question", func(r chi.Router) {
		r.Get("/all-questions", httpserver.questionList)
		r.Post("/create-question", httpserver.questionCreate)
	})
}
