package auth

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	entity "warehouse.GO/model/entity"
)

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

// FindActiveToken returns a non-revoked access token by its token string.
func (r *AuthRepository) FindActiveToken(token string) (*entity.AccessToken, error) {
	var t entity.AccessToken
	err := r.db.Where("token = ? AND revoked = ?", token, false).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindOperator returns an active operator by id.
func (r *AuthRepository) FindOperator(id uint) (*entity.Operator, error) {
	var op entity.Operator
	if err := r.db.Where("operator_id = ? AND is_active = ?", id, true).First(&op).Error; err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *AuthRepository) FindOperatorByUsername(username string) (*entity.Operator, error) {
	var op entity.Operator
	if err := r.db.Where("username = ?", username).First(&op).Error; err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *AuthRepository) CreateOperator(op *entity.Operator) error {
	return r.db.Create(op).Error
}

func (r *AuthRepository) ListOperators() ([]entity.Operator, error) {
	var ops []entity.Operator
	err := r.db.Order("username ASC").Find(&ops).Error
	return ops, err
}

// IssueToken creates a new access token for the operator.
func (r *AuthRepository) IssueToken(operatorID uint) (*entity.AccessToken, error) {
	t := &entity.AccessToken{
		OperatorID: operatorID,
		Token:      strings.ReplaceAll(uuid.NewString(), "-", ""),
	}
	if err := r.db.Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// RevokeTokens revokes every token of the operator.
func (r *AuthRepository) RevokeTokens(operatorID uint) error {
	return r.db.Model(&entity.AccessToken{}).
		Where("operator_id = ?", operatorID).
		Update("revoked", true).Error
}
