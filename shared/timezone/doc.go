// Package timezone provides timezone utilities for the application.
//
// Usage Examples:
//
//  1. Initialization from main:
//     timezone.Init(cfg)
//
//  2. Basic usage after initialization:
//     now := timezone.Now()                    // Get current time in app timezone
//     appTime := timezone.ToAppTime(someTime)  // Convert any time to app timezone
//
//  3. Parsing a booking date in app timezone:
//     t, err := timezone.Parse("2006-01-02 15:04", "2024-01-01 14:00")
//
//  4. Report bucket boundaries:
//     today := timezone.StartOfDay(timezone.Now())
//     month := timezone.StartOfMonth(timezone.Now())
//
// The timezone is configured via the APP_TIMEZONE environment variable.
// Use standard IANA timezone database names, e.g. "Asia/Seoul".
package timezone
