package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/garudacbt/cbt-backend/internal/config"
	"github.com/garudacbt/cbt-backend/internal/database"
	"github.com/garudacbt/cbt-backend/internal/logger"
	"github.com/garudacbt/cbt-backend/internal/model"
	"github.com/garudacbt/cbt-backend/internal/repository"
)

// Seeds a demo agenda with one subject per question type family and a
// batch of participants, for local development.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	participantRepo := repository.NewParticipantRepository(pool)
	agendaRepo := repository.NewAgendaRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)

	fmt.Println("=== Seeding Demo Data ===")

	// ─── Agenda ────────────────────────────────────────────────────────
	now := time.Now()
	agenda := &model.Agenda{
		Name:        "Tryout Akbar",
		Description: "Agenda demo untuk pengembangan lokal",
		Kind:        "TRYOUT",
		Token:       "DEMO24",
		StartsAt:    now.Add(-time.Hour),
		EndsAt:      now.Add(7 * 24 * time.Hour),
	}
	if err := agendaRepo.Create(ctx, agenda); err != nil {
		log.Fatal().Err(err).Msg("Failed to create agenda")
	}
	fmt.Printf("Created agenda %q (token %s)\n", agenda.Name, agenda.Token)

	// ─── Subjects ──────────────────────────────────────────────────────
	subjects := []*model.Subject{
		{AgendaID: agenda.ID, Name: "Matematika", DurationMinutes: 90, QuestionCount: 4, Active: true},
		{AgendaID: agenda.ID, Name: "Bahasa Indonesia", DurationMinutes: 60, QuestionCount: 2, Active: true},
	}
	for _, subject := range subjects {
		if err := subjectRepo.Create(ctx, subject); err != nil {
			log.Fatal().Err(err).Str("subject", subject.Name).Msg("Failed to create subject")
		}
		fmt.Printf("Created subject %q\n", subject.Name)
	}

	// ─── Questions ─────────────────────────────────────────────────────
	mustJSON := func(v interface{}) json.RawMessage {
		raw, err := json.Marshal(v)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to marshal payload")
		}
		return raw
	}

	mathQuestions := []*model.Question{
		{
			SubjectID: subjects[0].ID,
			Number:    1,
			Type:      model.QuestionTypePG,
			Text:      "Berapakah hasil dari 7 x 8?",
			Payload: mustJSON(model.ChoicePayload{Options: []model.ChoiceOption{
				{Label: "A", Text: "54"},
				{Label: "B", Text: "56"},
				{Label: "C", Text: "58"},
				{Label: "D", Text: "64"},
			}}),
			AnswerKey: "B",
		},
		{
			SubjectID: subjects[0].ID,
			Number:    2,
			Type:      model.QuestionTypePK,
			Text:      "Pilih semua bilangan prima.",
			Payload: mustJSON(model.ChoicePayload{Options: []model.ChoiceOption{
				{Label: "A", Text: "2"},
				{Label: "B", Text: "9"},
				{Label: "C", Text: "11"},
				{Label: "D", Text: "15"},
			}}),
			AnswerKey: "AC",
		},
		{
			SubjectID: subjects[0].ID,
			Number:    3,
			Type:      model.QuestionTypeBS,
			Text:      "Tentukan benar atau salah.",
			Payload: mustJSON(model.StatementPayload{Statements: []string{
				"Akar dari 16 adalah 4",
				"Bilangan genap habis dibagi 3",
				"Hasil 5 + 5 adalah 10",
			}}),
			AnswerKey: "BSB",
		},
		{
			SubjectID: subjects[0].ID,
			Number:    4,
			Type:      model.QuestionTypeMJ,
			Text:      "Jodohkan operasi dengan hasilnya.",
			Payload: mustJSON(model.MatchingPayload{
				Left:  []string{"3 x 3", "2 + 2", "10 - 4"},
				Right: []string{"9", "4", "6"},
			}),
			AnswerKey: "1-1,2-2,3-3",
		},
	}

	indoQuestions := []*model.Question{
		{
			SubjectID: subjects[1].ID,
			Number:    1,
			Type:      model.QuestionTypeST,
			Text:      "Nyatakan setuju atau tidak setuju.",
			Payload: mustJSON(model.StatementPayload{Statements: []string{
				"Membaca memperluas kosakata",
				"Ejaan tidak penting dalam tulisan resmi",
			}}),
			AnswerKey: "ST",
		},
		{
			SubjectID: subjects[1].ID,
			Number:    2,
			Type:      model.QuestionTypeUR,
			Text:      "Jelaskan perbedaan paragraf deduktif dan induktif.",
			AnswerKey: "",
		},
	}

	created := 0
	for _, q := range append(mathQuestions, indoQuestions...) {
		if err := questionRepo.Create(ctx, q); err != nil {
			log.Fatal().Err(err).Int("no_soal", q.Number).Msg("Failed to create question")
		}
		created++
	}
	fmt.Printf("Created %d questions\n", created)

	// ─── Participants ──────────────────────────────────────────────────
	names := []string{
		"Budi Santoso", "Siti Aminah", "Andi Pratama", "Rina Wati", "Joko Susilo",
		"Ayu Lestari", "Dodi Kusuma", "Eka Putri", "Fahri Hamzah", "Gita Savitri",
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("peserta123"), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	successCount := 0
	for i, name := range names {
		participant := &model.Participant{
			Username:      fmt.Sprintf("peserta%02d", i+1),
			Name:          name,
			School:        "SMA Negeri 1 Demo",
			GradeLevel:    "SMA",
			ClassName:     "XII IPA 1",
			Phone:         fmt.Sprintf("0812000000%02d", i+1),
			GuardianPhone: fmt.Sprintf("0813000000%02d", i+1),
			PasswordHash:  string(hash),
		}
		if err := participantRepo.Create(ctx, participant); err != nil {
			fmt.Printf("Error creating participant %s: %v\n", participant.Username, err)
			continue
		}
		successCount++
	}

	fmt.Printf("\nSeed completed! Added %d/%d participants (password: peserta123).\n", successCount, len(names))
}
