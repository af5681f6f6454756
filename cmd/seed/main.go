package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"movieapp/internal/auth"
	"movieapp/internal/customers"
	"movieapp/internal/genres"
	"movieapp/internal/languages"
	"movieapp/internal/movies"
	"movieapp/internal/sessions"
	"movieapp/internal/shared/config"
	"movieapp/internal/shared/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeder goes through the service layer so seeded rows pass the same validation as API writes.
type Seeder struct {
	db  *database.DB
	cfg *config.Config

	genres    genres.Service
	languages languages.Service
	movies    movies.Service
	sessions  sessions.Service
	customers customers.Service
	auth      auth.Service
}

func NewSeeder(cfg *config.Config, db *database.DB) *Seeder {
	pg := db.GetPostgreSQL()

	genreService := genres.NewService(genres.NewRepository(pg))
	languageService := languages.NewService(languages.NewRepository(pg))
	movieService := movies.NewService(movies.NewRepository(pg), genreService)
	sessionService := sessions.NewService(sessions.NewRepository(pg), movieService, languageService)

	return &Seeder{
		db:        db,
		cfg:       cfg,
		genres:    genreService,
		languages: languageService,
		movies:    movieService,
		sessions:  sessionService,
		customers: customers.NewService(customers.NewRepository(pg), movieService, movieService, sessionService),
		auth:      auth.NewService(auth.NewRepository(pg), cfg),
	}
}

func main() {
	fmt.Println("🌱 Starting movieapp database seeder...")

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := NewSeeder(cfg, db)

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(context.Background()); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	// Cached reads would still describe the old rows
	if err := db.GetRedis().FlushDB(context.Background()).Err(); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Failed to flush Redis cache: %v\n", err)
	}

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables, children first.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"customer_sessions",
		"session_occupied_seats",
		"sessions",
		"customers",
		"movie_genres",
		"movies",
		"genres",
		"languages",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll(ctx context.Context) error {
	if err := s.SeedAdmin(ctx); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	genreIDs, err := s.SeedGenres(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed genres: %w", err)
	}

	languageIDs, err := s.SeedLanguages(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed languages: %w", err)
	}

	movieIDs, err := s.SeedMovies(ctx, genreIDs)
	if err != nil {
		return fmt.Errorf("failed to seed movies: %w", err)
	}

	sessionIDs, err := s.SeedSessions(ctx, movieIDs, languageIDs)
	if err != nil {
		return fmt.Errorf("failed to seed sessions: %w", err)
	}

	if err := s.SeedOccupancy(ctx, sessionIDs); err != nil {
		return fmt.Errorf("failed to seed occupied seats: %w", err)
	}

	return s.SeedCustomers(ctx, sessionIDs)
}

// SeedAdmin creates the back-office admin (password "qwerty1")
func (s *Seeder) SeedAdmin(ctx context.Context) error {
	fmt.Println("  👤 Seeding admin...")

	admin, err := s.auth.EnsureAdmin(ctx, &auth.RegisterRequest{
		FirstName: "Admin",
		LastName:  "User",
		Email:     "admin@movieapp.local",
		Password:  "qwerty1",
	})
	if err != nil {
		return err
	}

	fmt.Printf("    ✅ Created user: %s (%s)\n", admin.Email, admin.Role)
	return nil
}

func (s *Seeder) SeedGenres(ctx context.Context) (map[string]uuid.UUID, error) {
	fmt.Println("  🏷️ Seeding genres...")

	ids := make(map[string]uuid.UUID)
	for _, text := range []string{"Action", "Comedy", "Drama", "Horror", "Animation", "Science Fiction"} {
		genre, err := s.genres.CreateGenre(ctx, genres.CreateGenreRequest{Text: text})
		if err != nil {
			return nil, fmt.Errorf("failed to create genre %s: %w", text, err)
		}
		ids[text] = uuid.MustParse(genre.ID)
		fmt.Printf("    ✅ Created genre: %s\n", genre.Text)
	}
	return ids, nil
}

func (s *Seeder) SeedLanguages(ctx context.Context) ([]uuid.UUID, error) {
	fmt.Println("  🗣️ Seeding languages...")

	var ids []uuid.UUID
	for _, text := range []string{"English", "Estonian", "Russian"} {
		language, err := s.languages.CreateLanguage(ctx, languages.LanguageRequest{Text: text})
		if err != nil {
			return nil, fmt.Errorf("failed to create language %s: %w", text, err)
		}
		ids = append(ids, uuid.MustParse(language.ID))
		fmt.Printf("    ✅ Created language: %s\n", language.Text)
	}
	return ids, nil
}

func (s *Seeder) SeedMovies(ctx context.Context, genreIDs map[string]uuid.UUID) ([]uuid.UUID, error) {
	fmt.Println("  🎬 Seeding movies...")

	moviesData := []struct {
		title    string
		age      string
		released string
		minutes  int
		genres   []string
	}{
		{"Mad Max: Fury Road", "16+", "2015-05-15", 120, []string{"Action", "Science Fiction"}},
		{"Inside Out 2", "PG", "2024-06-14", 96, []string{"Animation", "Comedy"}},
		{"The Grand Budapest Hotel", "12+", "2014-03-07", 99, []string{"Comedy", "Drama"}},
		{"Dune: Part Two", "12+", "2024-03-01", 166, []string{"Science Fiction", "Drama"}},
		{"Hereditary", "18+", "2018-06-08", 127, []string{"Horror", "Drama"}},
		{"Paddington 2", "PG", "2017-11-10", 104, []string{"Animation", "Comedy"}},
	}

	var ids []uuid.UUID
	for _, m := range moviesData {
		req := movies.MovieRequest{
			Title:           m.title,
			AgeRestriction:  m.age,
			ReleasedOn:      m.released,
			DurationMinutes: m.minutes,
		}
		for _, g := range m.genres {
			req.GenreIDs = append(req.GenreIDs, genreIDs[g])
		}

		movie, err := s.movies.CreateMovie(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("failed to create movie %s: %w", m.title, err)
		}
		ids = append(ids, uuid.MustParse(movie.ID))
		fmt.Printf("    ✅ Created movie: %s (%s)\n", movie.Title, movie.AgeRestriction)
	}
	return ids, nil
}

// SeedSessions schedules every movie twice a day across the current week,
// plus one past screening per movie so customers have a history.
func (s *Seeder) SeedSessions(ctx context.Context, movieIDs, languageIDs []uuid.UUID) ([]uuid.UUID, error) {
	fmt.Println("  🎟️ Seeding sessions...")

	weekStart, _ := movies.WeekBounds(time.Now().UTC())
	halls := []string{"1", "2", "3"}

	var ids []uuid.UUID
	create := func(req sessions.SessionRequest) error {
		session, err := s.sessions.CreateSession(ctx, req)
		if err != nil {
			return err
		}
		ids = append(ids, uuid.MustParse(session.ID))
		return nil
	}

	for i, movieID := range movieIDs {
		// Last week's screening
		if err := create(sessions.SessionRequest{
			MovieID:    movieID,
			LanguageID: languageIDs[i%len(languageIDs)],
			HallNr:     halls[i%len(halls)],
			StartAt:    weekStart.AddDate(0, 0, -3).Add(time.Duration(17+i%4) * time.Hour),
			Price:      7.5,
		}); err != nil {
			return nil, fmt.Errorf("failed to create past session: %w", err)
		}

		// Only every other movie plays this week, so recommendations have something to filter
		if i%2 == 1 {
			continue
		}
		for day := 0; day < 7; day++ {
			for _, hour := range []int{14, 20} {
				if err := create(sessions.SessionRequest{
					MovieID:    movieID,
					LanguageID: languageIDs[(i+day)%len(languageIDs)],
					HallNr:     halls[(i+day)%len(halls)],
					StartAt:    weekStart.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour),
					Price:      9.9,
				}); err != nil {
					return nil, fmt.Errorf("failed to create session: %w", err)
				}
			}
		}
	}

	fmt.Printf("    ✅ Created %d sessions\n", len(ids))
	return ids, nil
}

// SeedOccupancy fills the middle of the first sessions' halls.
func (s *Seeder) SeedOccupancy(ctx context.Context, sessionIDs []uuid.UUID) error {
	fmt.Println("  💺 Seeding occupied seats...")

	var taken []sessions.SeatPosition
	for row := 4; row <= 6; row++ {
		for seat := 4; seat <= 7; seat++ {
			taken = append(taken, sessions.SeatPosition{RowNr: row, SeatNr: seat})
		}
	}

	for i, id := range sessionIDs {
		if i%3 != 0 {
			continue
		}
		if _, err := s.sessions.UpdateOccupancy(ctx, id, sessions.OccupancyRequest{Occupied: taken}); err != nil {
			return fmt.Errorf("failed to occupy seats for session %s: %w", id, err)
		}
	}
	return nil
}

func (s *Seeder) SeedCustomers(ctx context.Context, sessionIDs []uuid.UUID) error {
	fmt.Println("  🍿 Seeding customers...")

	customersData := []struct {
		firstName string
		lastName  string
		bornOn    string
		email     string
		history   []int
	}{
		{"Mari", "Tamm", "1990-02-11", "mari.tamm@example.com", []int{0, 2}},
		{"Jaan", "Kask", "2014-08-30", "jaan.kask@example.com", []int{1}},
		{"Olga", "Ivanova", "1978-12-01", "olga.ivanova@example.com", nil},
	}

	for _, c := range customersData {
		customer, err := s.customers.CreateCustomer(ctx, customers.CustomerRequest{
			FirstName: c.firstName,
			LastName:  c.lastName,
			BornOn:    c.bornOn,
			Email:     c.email,
		})
		if err != nil {
			return fmt.Errorf("failed to create customer %s: %w", c.email, err)
		}

		customerID := uuid.MustParse(customer.ID)
		for _, idx := range c.history {
			if idx >= len(sessionIDs) {
				continue
			}
			if _, err := s.customers.AddToHistory(ctx, customerID, customers.HistoryRequest{SessionID: sessionIDs[idx]}); err != nil {
				return fmt.Errorf("failed to add history for %s: %w", c.email, err)
			}
		}
		fmt.Printf("    ✅ Created customer: %s (%d sessions watched)\n", customer.Email, len(c.history))
	}
	return nil
}
