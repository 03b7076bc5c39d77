package repository

import (
	bookingRepo "vibezone/database/repository/booking"
	ratelimitRepo "vibezone/database/repository/ratelimit"
	reminderRepo "vibezone/database/repository/reminder"
	verificationRepo "vibezone/database/repository/verification"
)

// Re-export the BookingRepository interface and constructor.
type BookingRepository = bookingRepo.BookingRepository

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo

// Re-export the RateLimitRepository interface and constructor.
type RateLimitRepository = ratelimitRepo.RateLimitRepository

var NewMongoRateLimitRepo = ratelimitRepo.NewMongoRateLimitRepo

// Re-export the VerificationRepository interface and constructor.
type VerificationRepository = verificationRepo.VerificationRepository

var NewMongoVerificationRepo = verificationRepo.NewMongoVerificationRepo

// Re-export the ReminderRepository interface and constructor.
type ReminderRepository = reminderRepo.ReminderRepository

var NewMongoReminderRepo = reminderRepo.NewMongoReminderRepo
