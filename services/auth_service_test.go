package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsblog/newsblog/models"
	"github.com/newsblog/newsblog/validation"
)

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	form := validation.RegistrationForm{
		Name:            "Ann",
		Email:           "ann@x.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
	user, err := svc.Register(form)
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)
	assert.Equal(t, "ann@x.com", user.Email)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	createTestUser(t, db, "Ann", "ann@x.com", false)

	_, err := svc.Register(validation.RegistrationForm{
		Name:            "Imposter",
		Email:           "ann@x.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "email")

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "no new row may be written on a colliding email")
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	_, err := svc.Register(validation.RegistrationForm{
		Name:            "A",
		Email:           "not-an-email",
		Password:        "short",
		ConfirmPassword: "different",
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "email")
	assert.Contains(t, ve.Fields, "password")
	assert.Contains(t, ve.Fields, "confirm_password")

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)
	createTestUser(t, db, "Ann", "ann@x.com", false)

	user, err := svc.Login(validation.LoginForm{Email: "ann@x.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)

	_, err = svc.Login(validation.LoginForm{Email: "ann@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(validation.LoginForm{Email: "nobody@x.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown email must be indistinguishable from a wrong password")
}

func TestLoginValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	_, err := svc.Login(validation.LoginForm{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "email")
	assert.Contains(t, ve.Fields, "password")
}

func TestFindByEmailIsCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)
	createTestUser(t, db, "Ann", "ann@x.com", false)

	_, err := svc.FindByEmail("ANN@X.COM")
	assert.Error(t, err)
}

func TestDeleteUserCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	ann := createTestUser(t, db, "Ann", "ann@x.com", false)
	bob := createTestUser(t, db, "Bob", "bob@x.com", false)

	annArticle := createTestArticle(t, db, ann, "Ann writes about art", models.CategoryArt)
	bobArticle := createTestArticle(t, db, bob, "Bob writes about politics", models.CategoryPolitics)

	// Comments on Ann's article: one from Bob, one anonymous.
	require.NoError(t, db.Create(&models.Comment{ArticleID: annArticle.ID, UserID: &bob.ID, AuthorName: "Bob", Body: "nice one"}).Error)
	require.NoError(t, db.Create(&models.Comment{ArticleID: annArticle.ID, AuthorName: "Guest", Body: "me too"}).Error)
	// Ann comments on Bob's article.
	require.NoError(t, db.Create(&models.Comment{ArticleID: bobArticle.ID, UserID: &ann.ID, AuthorName: "Ann", Body: "disagree"}).Error)
	// An unrelated anonymous comment on Bob's article survives everything.
	require.NoError(t, db.Create(&models.Comment{ArticleID: bobArticle.ID, AuthorName: "Guest", Body: "well said"}).Error)

	require.NoError(t, svc.DeleteUser(ann.ID))

	var users, articles, comments int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Article{}).Count(&articles).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.EqualValues(t, 1, users)
	assert.EqualValues(t, 1, articles, "Bob's article must survive")
	assert.EqualValues(t, 1, comments, "only the anonymous comment on Bob's article survives")

	var survivor models.Comment
	require.NoError(t, db.First(&survivor).Error)
	assert.Equal(t, bobArticle.ID, survivor.ArticleID)
	assert.Equal(t, "well said", survivor.Body)
}

func TestDeleteUserNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	err := svc.DeleteUser(42)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}
