package mysql

// -----------------------------------------------------------------------------
// LISTINGS & HOSTS
// -----------------------------------------------------------------------------

var listingSummaryColumns = []string{
	"id", "name", "picture_url", "neighbourhood", "price", "review_scores_rating",
}

const getListingSQL = `
SELECT
  l.id,
  l.host_id,
  l.name,
  l.description,
  l.neighbourhood,
  l.picture_url,
  l.price,
  l.number_of_reviews,
  l.review_scores_rating,
  l.review_scores_accuracy,
  l.review_scores_cleanliness,
  l.review_scores_checkin,
  l.review_scores_communication,
  l.review_scores_location,
  l.review_scores_value,
  h.name          AS host_name,
  h.picture_url   AS host_picture_url,
  h.is_superhost,
  h.response_rate,
  h.response_time
FROM listings l
JOIN hosts h ON h.id = l.host_id
WHERE l.id = ?
`

const listAmenitiesSQL = `
SELECT a.name
FROM amenities a
JOIN listings_amenities la ON la.amenity_id = a.id
WHERE la.listing_id = ?
ORDER BY a.name
`

const listPhotosSQL = `SELECT photo_url FROM listing_photos WHERE listing_id = ? ORDER BY position, id`

// Note: `date` is reserved; keep it quoted everywhere.
const listReviewsSQL = "SELECT id, listing_id, `date`, reviewer_name, comments\n" +
	"FROM reviews\nWHERE listing_id = ?\nORDER BY `date` DESC, id DESC\nLIMIT ?"

const getListingPriceSQL = `SELECT price FROM listings WHERE id = ?`

const suggestNeighbourhoodsSQL = `
SELECT DISTINCT neighbourhood
FROM listings
WHERE neighbourhood LIKE ?
ORDER BY neighbourhood
LIMIT ?
`

const getHostSQL = `
SELECT id, name, picture_url, location, about, is_superhost, response_rate, response_time
FROM hosts
WHERE id = ?
`

const listHostListingsSQL = `
SELECT id, name, picture_url, neighbourhood, price, review_scores_rating
FROM listings
WHERE host_id = ?
ORDER BY id
LIMIT ?
`

// -----------------------------------------------------------------------------
// BOOKINGS
// -----------------------------------------------------------------------------

// Serialises create-booking per listing: the second transaction waits here
// until the first commits, then its overlap count sees the new row.
const lockListingSQL = `SELECT id FROM listings WHERE id = ? FOR UPDATE`

// Params: listing, start, start, end, end, start, end.
// (a) the new stay starts inside an existing one, (b) it ends inside one,
// (c) it contains one. Bounds are inclusive.
const countOverlapsSQL = `
SELECT COUNT(*)
FROM bookings
WHERE listing_id = ?
  AND status <> 'cancelled'
  AND (
    (start_date <= ? AND end_date >= ?) OR
    (start_date <= ? AND end_date >= ?) OR
    (start_date >= ? AND end_date <= ?)
  )
`

const insertBookingSQL = `
INSERT INTO bookings (listing_id, guest_id, start_date, end_date, total_price, status)
VALUES (?, ?, ?, ?, ?, ?)
`

const getBookingSQL = `
SELECT id, listing_id, guest_id, start_date, end_date, total_price, status, created_at
FROM bookings
WHERE id = ?
`

const listGuestBookingsSQL = `
SELECT
  b.id, b.listing_id, b.guest_id, b.start_date, b.end_date, b.total_price, b.status, b.created_at,
  l.name        AS listing_name,
  l.picture_url AS picture_url
FROM bookings b
JOIN listings l ON l.id = b.listing_id
WHERE b.guest_id = ?
ORDER BY b.created_at DESC, b.id DESC
LIMIT ? OFFSET ?
`

const countGuestBookingsSQL = `SELECT COUNT(*) FROM bookings WHERE guest_id = ?`

const cancelBookingSQL = `UPDATE bookings SET status = 'cancelled' WHERE id = ? AND status = 'confirmed'`

// -----------------------------------------------------------------------------
// USERS
// -----------------------------------------------------------------------------

const insertUserSQL = `
INSERT INTO users (username, email, password_hash, phone)
VALUES (?, ?, ?, ?)
`

const userExistsSQL = `SELECT EXISTS(SELECT 1 FROM users WHERE email = ? OR username = ?)`

const getUserByUsernameSQL = `
SELECT id, username, email, password_hash, phone, created_at
FROM users
WHERE username = ?
`

// -----------------------------------------------------------------------------
// CATALOG (seeder write paths)
// -----------------------------------------------------------------------------

const upsertHostSQL = `
INSERT INTO hosts
  (id, name, picture_url, location, about, is_superhost, response_rate, response_time)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name          = VALUES(name),
  picture_url   = VALUES(picture_url),
  location      = VALUES(location),
  about         = VALUES(about),
  is_superhost  = VALUES(is_superhost),
  response_rate = VALUES(response_rate),
  response_time = VALUES(response_time)
`

const upsertListingSQL = `
INSERT INTO listings
  (id, host_id, name, description, neighbourhood, picture_url, price, number_of_reviews,
   review_scores_rating, review_scores_accuracy, review_scores_cleanliness, review_scores_checkin,
   review_scores_communication, review_scores_location, review_scores_value)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  host_id                     = VALUES(host_id),
  name                        = VALUES(name),
  description                 = VALUES(description),
  neighbourhood               = VALUES(neighbourhood),
  picture_url                 = VALUES(picture_url),
  price                       = VALUES(price),
  number_of_reviews           = VALUES(number_of_reviews),
  review_scores_rating        = VALUES(review_scores_rating),
  review_scores_accuracy      = VALUES(review_scores_accuracy),
  review_scores_cleanliness   = VALUES(review_scores_cleanliness),
  review_scores_checkin       = VALUES(review_scores_checkin),
  review_scores_communication = VALUES(review_scores_communication),
  review_scores_location      = VALUES(review_scores_location),
  review_scores_value         = VALUES(review_scores_value)
`

// LAST_INSERT_ID(id) makes LastInsertId return the existing row's id on a duplicate name.
const upsertAmenitySQL = `
INSERT INTO amenities (name) VALUES (?)
ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)
`

const deleteListingAmenitiesSQL = `DELETE FROM listings_amenities WHERE listing_id = ?`

const linkAmenitySQL = `INSERT IGNORE INTO listings_amenities (listing_id, amenity_id) VALUES (?, ?)`

const deleteListingPhotosSQL = `DELETE FROM listing_photos WHERE listing_id = ?`

const insertPhotoSQL = `INSERT INTO listing_photos (listing_id, photo_url, position) VALUES (?, ?, ?)`

const insertReviewsPrefix = "INSERT INTO reviews\n  (id, listing_id, `date`, reviewer_name, comments)\nVALUES "

const insertReviewsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  `date`        = VALUES(`date`),\n" +
	"  reviewer_name = VALUES(reviewer_name),\n" +
	"  comments      = COALESCE(VALUES(comments), reviews.comments)\n"
