package repository

import (
	bookedRepo "asst/database/repository/booked"
	catalogRepo "asst/database/repository/catalog"
	userRepo "asst/database/repository/user"
)

// Re-export the CatalogRepository interface and constructor.
type CatalogRepository = catalogRepo.CatalogRepository

var NewMongoCatalogRepo = catalogRepo.NewMongoCatalogRepo

// Re-export the BookedRepository interface and constructor.
type BookedRepository = bookedRepo.BookedRepository

var NewMongoBookedRepo = bookedRepo.NewMongoBookedRepo

// Re-export the UserRepository interface and constructor.
type UserRepository = userRepo.UserRepository

var NewMongoUserRepository = userRepo.NewMongoUserRepo
