package repository

// Timestamps are bucketed in the application timezone passed as a parameter.
// Status values are bound as parameters rather than inlined.
const (
	querySummary = `SELECT
	(SELECT COUNT(*) FROM bookings WHERE service_date >= $3::date AND service_date < $4::date) AS bookings,
	(SELECT COUNT(*) FROM bookings WHERE service_date >= $3::date AND service_date < $4::date AND status = $5) AS completed,
	(SELECT COUNT(*) FROM users WHERE created_at >= $1 AND created_at < $2) AS new_users,
	(SELECT COALESCE(SUM(total_price), 0) FROM bookings
		WHERE payment_status = $6 AND paid_at >= $1 AND paid_at < $2) AS revenue`

	queryStatusCounts = `SELECT status, COUNT(*) AS count FROM bookings GROUP BY status ORDER BY status`

	queryPopularServices = `SELECT s.id AS service_id, s.name, COUNT(b.id) AS count,
	COALESCE(SUM(b.total_price) FILTER (WHERE b.payment_status = $1), 0) AS revenue
	FROM bookings b
	JOIN services s ON s.id = b.service_id
	GROUP BY s.id, s.name
	ORDER BY count DESC, revenue DESC
	LIMIT $2`

	queryRecentBookings = `SELECT b.id, b.booking_number,
	COALESCE(u.name, b.guest_name, '') AS customer_name,
	COALESCE(s.name, '') AS service_name,
	b.service_date, b.status, b.created_at
	FROM bookings b
	LEFT JOIN users u ON u.id = b.user_id
	LEFT JOIN services s ON s.id = b.service_id
	ORDER BY b.created_at DESC
	LIMIT $1`

	queryAverageRating = `SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE is_hidden = FALSE`

	queryRevenueBuckets = `SELECT date_trunc($3, paid_at AT TIME ZONE $4) AS bucket,
	COUNT(*) AS count, COALESCE(SUM(total_price), 0) AS revenue
	FROM bookings
	WHERE payment_status = $5 AND paid_at >= $1 AND paid_at < $2
	GROUP BY bucket
	ORDER BY bucket`

	queryRevenueByService = `SELECT s.id AS service_id, s.name, COUNT(b.id) AS count,
	COALESCE(SUM(b.total_price), 0) AS revenue
	FROM bookings b
	JOIN services s ON s.id = b.service_id
	WHERE b.payment_status = $3 AND b.paid_at >= $1 AND b.paid_at < $2
	GROUP BY s.id, s.name
	ORDER BY revenue DESC`

	queryDailyBookings = `SELECT (created_at AT TIME ZONE $2)::date AS day, COUNT(*) AS total,
	COUNT(*) FILTER (WHERE status = $3) AS completed,
	COUNT(*) FILTER (WHERE status = $4) AS cancelled
	FROM bookings
	WHERE created_at >= $1
	GROUP BY day
	ORDER BY day`

	queryBookingsByHour = `SELECT EXTRACT(HOUR FROM created_at AT TIME ZONE $2)::int AS slot, COUNT(*) AS count
	FROM bookings
	WHERE created_at >= $1
	GROUP BY slot
	ORDER BY slot`

	queryBookingsByWeekday = `SELECT EXTRACT(DOW FROM service_date)::int AS slot, COUNT(*) AS count
	FROM bookings
	WHERE service_date >= $1::date
	GROUP BY slot
	ORDER BY slot`

	queryUserSummary = `SELECT COUNT(*) AS total,
	COUNT(*) FILTER (WHERE active) AS active,
	COUNT(*) FILTER (WHERE is_verified) AS verified
	FROM users`

	queryDailySignups = `SELECT (created_at AT TIME ZONE $2)::date AS day, COUNT(*) AS count
	FROM users
	WHERE created_at >= $1
	GROUP BY day
	ORDER BY day`

	queryTopSpenders = `SELECT u.id AS user_id, u.name, u.email, COUNT(b.id) AS booking_count,
	COALESCE(SUM(b.total_price) FILTER (WHERE b.payment_status = $1), 0) AS total_spent
	FROM bookings b
	JOIN users u ON u.id = b.user_id
	GROUP BY u.id, u.name, u.email
	ORDER BY total_spent DESC, booking_count DESC
	LIMIT $2`

	queryServiceStats = `SELECT s.id AS service_id, s.name, s.category, s.is_active, s.popularity,
	COALESCE(bk.total_bookings, 0) AS total_bookings,
	COALESCE(bk.completed_bookings, 0) AS completed_bookings,
	COALESCE(bk.total_revenue, 0) AS total_revenue,
	COALESCE(rv.average_rating, 0) AS average_rating,
	COALESCE(rv.review_count, 0) AS review_count
	FROM services s
	LEFT JOIN (
		SELECT service_id, COUNT(*) AS total_bookings,
		COUNT(*) FILTER (WHERE status = $1) AS completed_bookings,
		SUM(total_price) FILTER (WHERE payment_status = $2) AS total_revenue
		FROM bookings GROUP BY service_id
	) bk ON bk.service_id = s.id
	LEFT JOIN (
		SELECT service_id, AVG(rating) AS average_rating, COUNT(*) AS review_count
		FROM reviews WHERE is_hidden = FALSE GROUP BY service_id
	) rv ON rv.service_id = s.id
	ORDER BY total_bookings DESC, s.name`

	queryCleaners = `SELECT u.id, u.name, u.email, u.phone, u.active,
	COUNT(b.id) AS total_jobs,
	COUNT(b.id) FILTER (WHERE b.status = $2) AS completed_jobs,
	u.average_rating, u.total_reviews
	FROM users u
	LEFT JOIN bookings b ON b.cleaner_id = u.id
	WHERE u.role = $1
	GROUP BY u.id
	ORDER BY completed_jobs DESC, u.name`

	queryCleanerSchedule = `SELECT b.id AS booking_id, b.booking_number, b.status,
	COALESCE(s.name, '') AS service_name, b.duration,
	b.service_date, b.service_time, b.start_at, b.end_at,
	COALESCE(u.name, b.guest_name, '') AS customer_name,
	COALESCE(u.phone, b.guest_phone, '') AS customer_phone,
	b.address_street, b.address_detail
	FROM bookings b
	LEFT JOIN services s ON s.id = b.service_id
	LEFT JOIN users u ON u.id = b.user_id
	WHERE b.cleaner_id = $1 AND b.service_date >= $2::date AND b.service_date <= $3::date
	ORDER BY b.service_date, b.service_time`
)
