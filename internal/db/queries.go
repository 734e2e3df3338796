package db

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX, driver DatabaseDriver) *Queries {
	return &Queries{db: db, driver: driver}
}

// Queries holds the hand-written statements for actors and movies.
type Queries struct {
	db     DBTX
	driver DatabaseDriver
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx, driver: q.driver}
}

func (q *Queries) query(s string) string {
	return Rebind(q.driver, s)
}

const listActors = `SELECT id, name, age, gender FROM actors ORDER BY id`

func (q *Queries) ListActors(ctx context.Context) ([]Actor, error) {
	rows, err := q.db.QueryContext(ctx, listActors)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Actor{}
	for rows.Next() {
		var i Actor
		if err := rows.Scan(&i.ID, &i.Name, &i.Age, &i.Gender); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getActor = `SELECT id, name, age, gender FROM actors WHERE id = ?`

func (q *Queries) GetActor(ctx context.Context, id int64) (Actor, error) {
	row := q.db.QueryRowContext(ctx, q.query(getActor), id)
	var i Actor
	err := row.Scan(&i.ID, &i.Name, &i.Age, &i.Gender)
	return i, err
}

const createActor = `INSERT INTO actors (name, age, gender) VALUES (?, ?, ?)
RETURNING id, name, age, gender`

type CreateActorParams struct {
	Name   string
	Age    int32
	Gender string
}

func (q *Queries) CreateActor(ctx context.Context, arg CreateActorParams) (Actor, error) {
	row := q.db.QueryRowContext(ctx, q.query(createActor), arg.Name, arg.Age, arg.Gender)
	var i Actor
	err := row.Scan(&i.ID, &i.Name, &i.Age, &i.Gender)
	return i, err
}

const updateActor = `UPDATE actors SET name = ?, age = ?, gender = ? WHERE id = ?
RETURNING id, name, age, gender`

type UpdateActorParams struct {
	ID     int64
	Name   string
	Age    int32
	Gender string
}

func (q *Queries) UpdateActor(ctx context.Context, arg UpdateActorParams) (Actor, error) {
	row := q.db.QueryRowContext(ctx, q.query(updateActor), arg.Name, arg.Age, arg.Gender, arg.ID)
	var i Actor
	err := row.Scan(&i.ID, &i.Name, &i.Age, &i.Gender)
	return i, err
}

const deleteActor = `DELETE FROM actors WHERE id = ?`

// DeleteActor returns the number of rows removed.
func (q *Queries) DeleteActor(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, q.query(deleteActor), id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listMovies = `SELECT id, title, release_date FROM movies ORDER BY id`

func (q *Queries) ListMovies(ctx context.Context) ([]Movie, error) {
	rows, err := q.db.QueryContext(ctx, listMovies)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Movie{}
	for rows.Next() {
		var i Movie
		if err := rows.Scan(&i.ID, &i.Title, &i.ReleaseDate); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getMovie = `SELECT id, title, release_date FROM movies WHERE id = ?`

func (q *Queries) GetMovie(ctx context.Context, id int64) (Movie, error) {
	row := q.db.QueryRowContext(ctx, q.query(getMovie), id)
	var i Movie
	err := row.Scan(&i.ID, &i.Title, &i.ReleaseDate)
	return i, err
}

const createMovie = `INSERT INTO movies (title, release_date) VALUES (?, ?)
RETURNING id, title, release_date`

type CreateMovieParams struct {
	Title       string
	ReleaseDate string
}

func (q *Queries) CreateMovie(ctx context.Context, arg CreateMovieParams) (Movie, error) {
	row := q.db.QueryRowContext(ctx, q.query(createMovie), arg.Title, arg.ReleaseDate)
	var i Movie
	err := row.Scan(&i.ID, &i.Title, &i.ReleaseDate)
	return i, err
}

const updateMovie = `UPDATE movies SET title = ?, release_date = ? WHERE id = ?
RETURNING id, title, release_date`

type UpdateMovieParams struct {
	ID          int64
	Title       string
	ReleaseDate string
}

func (q *Queries) UpdateMovie(ctx context.Context, arg UpdateMovieParams) (Movie, error) {
	row := q.db.QueryRowContext(ctx, q.query(updateMovie), arg.Title, arg.ReleaseDate, arg.ID)
	var i Movie
	err := row.Scan(&i.ID, &i.Title, &i.ReleaseDate)
	return i, err
}

const deleteMovie = `DELETE FROM movies WHERE id = ?`

// DeleteMovie returns the number of rows removed.
func (q *Queries) DeleteMovie(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, q.query(deleteMovie), id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
