package main

import (
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/amravati-mc/e-library-backend/config"
	"github.com/amravati-mc/e-library-backend/models"
)

// Seeds demo users, categories and a starter catalog. Safe to re-run:
// existing rows are left alone.

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}

	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatal("cannot connect to database:", err)
	}
	if err := db.AutoMigrate(config.AllModels()...); err != nil {
		log.Fatal("autoMigrate failed:", err)
	}

	seedUsers(db)
	categories := seedCategories(db)
	seedBooks(db, categories)

	log.Println("seed complete")
}

func seedUsers(db *gorm.DB) {
	demo := []struct {
		name, email, phone, password string
		role                         models.UserRole
	}{
		{"Rahul Verma", "demo@user.com", "9876543210", "user123", models.RoleCitizen},
		{"Admin User", "admin@amc.edu", "9876543211", "admin123", models.RoleAdmin},
	}

	for _, u := range demo {
		var existing models.User
		if err := db.Where("email = ?", u.email).First(&existing).Error; err == nil {
			continue
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("hash failed:", err)
		}
		user := models.User{
			Name:     u.name,
			Email:    u.email,
			Phone:    u.phone,
			Password: string(hashed),
			Role:     u.role,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatal("cannot create user:", err)
		}
		log.Printf("created %s user (%s)", u.role, u.email)
	}
}

func seedCategories(db *gorm.DB) map[string]uuid.UUID {
	data := []struct{ name, slug, description string }{
		{"NCERT", "ncert", "National Council of Educational Research and Training textbooks"},
		{"Competitive Exams", "competitive-exams", "UPSC, MPSC, Banking, and other competitive exam materials"},
		{"History", "history", "Historical books and archives"},
		{"Science", "science", "Science and technology books"},
		{"Mathematics", "mathematics", "Mathematics textbooks and references"},
		{"Literature", "literature", "Literature and language books"},
		{"General Knowledge", "general-knowledge", "General awareness and current affairs"},
	}

	ids := make(map[string]uuid.UUID, len(data))
	for _, c := range data {
		var existing models.Category
		if err := db.Where("name = ?", c.name).First(&existing).Error; err == nil {
			ids[c.name] = existing.ID
			continue
		}
		category := models.Category{Name: c.name, Slug: c.slug, Description: c.description}
		if err := db.Create(&category).Error; err != nil {
			log.Fatal("cannot create category:", err)
		}
		ids[c.name] = category.ID
		log.Printf("created category: %s", c.name)
	}
	return ids
}

func seedBooks(db *gorm.DB, categories map[string]uuid.UUID) {
	data := []struct {
		title, author, category, description, language string
		year, pages                                    int
	}{
		{"Indian History Vol. 1 - Ancient India", "R.S. Sharma", "History",
			"Comprehensive guide to ancient Indian history covering Indus Valley Civilization to Gupta Empire", "English", 2019, 412},
		{"Mathematics for Class X", "NCERT", "NCERT",
			"Standard mathematics textbook covering algebra, geometry and trigonometry", "English", 2021, 368},
		{"Concepts of Physics", "H.C. Verma", "Science",
			"Foundational physics text with worked problems for secondary and competitive study", "English", 2017, 462},
		{"Indian Polity", "M. Laxmikanth", "Competitive Exams",
			"Reference on the Indian constitution and governance for UPSC and MPSC aspirants", "English", 2020, 688},
		{"Godan", "Munshi Premchand", "Literature",
			"Classic Hindi novel on rural life and social change", "Hindi", 1936, 328},
	}

	for _, b := range data {
		var existing models.Book
		if err := db.Where("title = ?", b.title).First(&existing).Error; err == nil {
			continue
		}
		catID, ok := categories[b.category]
		var categoryID *uuid.UUID
		if ok {
			categoryID = &catID
		}
		book := models.Book{
			Title:       b.title,
			Author:      b.author,
			CategoryID:  categoryID,
			Description: b.description,
			Language:    b.language,
			Year:        b.year,
			Pages:       b.pages,
		}
		if err := db.Create(&book).Error; err != nil {
			log.Fatal("cannot create book:", err)
		}
		log.Printf("created book: %s", b.title)
	}
}
