package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shahzadcollection/storefront-api/models"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StoreInfoInput replaces the store-info block
type StoreInfoInput struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Image        *string `json:"image"`
	Location     string  `json:"location"`
	ContactPhone string  `json:"contact_phone"`
	Email        *string `json:"email"`
	StoreHours   *string `json:"store_hours"`
	FacebookURL  *string `json:"facebook_url"`
	InstagramURL *string `json:"instagram_url"`
	TiktokURL    *string `json:"tiktok_url"`
}

// BankDetailsInput replaces the bank account shown at checkout
type BankDetailsInput struct {
	BankName      string  `json:"bank_name"`
	AccountNumber string  `json:"account_number"`
	AccountTitle  string  `json:"account_title"`
	IBAN          *string `json:"iban"`
	SwiftCode     *string `json:"swift_code"`
	BranchName    *string `json:"branch_name"`
	BranchAddress *string `json:"branch_address"`
	ContactPhone  *string `json:"contact_phone"`
}

// AboutPageInput replaces the about page copy
type AboutPageInput struct {
	PageTitle     string  `json:"page_title"`
	PageSubtitle  *string `json:"page_subtitle"`
	StoryTitle    string  `json:"story_title"`
	StoryContent  *string `json:"story_content"`
	ValuesTitle   *string `json:"values_title"`
	Value1Title   *string `json:"value1_title"`
	Value1Content *string `json:"value1_content"`
	Value2Title   *string `json:"value2_title"`
	Value2Content *string `json:"value2_content"`
	Value3Title   *string `json:"value3_title"`
	Value3Content *string `json:"value3_content"`
}

// OwnerInput creates an owner. A nil Position appends after the last owner.
type OwnerInput struct {
	Name        string  `json:"name"`
	Image       *string `json:"image"`
	Description *string `json:"description"`
	Position    *int    `json:"position"`
}

// UpdateOwnerInput changes an owner. Active false soft-deletes it.
type UpdateOwnerInput struct {
	Name        *string `json:"name"`
	Image       *string `json:"image"`
	Description *string `json:"description"`
	Position    *int    `json:"position"`
	Active      *bool   `json:"active"`
}

// SectionInput creates a home-page section
type SectionInput struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Image       string   `json:"image"`
	Items       []string `json:"items"`
}

// UpdateSectionInput changes a section. Active false soft-deletes it.
type UpdateSectionInput struct {
	Type        *string   `json:"type"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Image       *string   `json:"image"`
	Items       *[]string `json:"items"`
	Active      *bool     `json:"active"`
}

// StoreService manages the storefront's editable content: the store-info,
// bank-details and about-page singletons plus owners and sections
type StoreService struct {
	db *gorm.DB
}

func NewStoreService(db *gorm.DB) *StoreService {
	return &StoreService{db: db}
}

const defaultStoryContent = "Established in 1995, Shahzad Fabrics Brand's Shop has been a cornerstone of Lahore's textile market for nearly three decades. " +
	"What started as a small family business has grown into one of the most trusted fabric stores in the city, known for our extensive collection and exceptional service.\n\n" +
	"Located in the heart of Lahore at 26-Hajvery Center, Ichra Road, we have been serving customers with premium quality fabrics for both ladies and gents. " +
	"Our collection includes everything from elegant lawn and chiffon for women to premium suiting and shirting for men.\n\n" +
	"Our success is built on three pillars: quality, service, and trust. We carefully select each fabric in our collection, ensuring it meets our high standards. " +
	"Our knowledgeable staff is always ready to help you find the perfect fabric for your needs, whether it's for everyday wear or a special occasion."

// DefaultStoreInfo is served until an admin saves store info
func DefaultStoreInfo() models.StoreInfo {
	return models.StoreInfo{
		Title:        "Visit Our Store in Lahore",
		Description:  ptr("Experience the finest quality fabrics in person at our flagship store located in the heart of Lahore. Our expert staff is ready to help you find the perfect fabric for your needs."),
		Image:        ptr("/shop-cover.jpeg"),
		Location:     "26-Hajvery Center, Ichra Road, Lahore",
		ContactPhone: "0323 9348438",
		Email:        ptr("info@shahzadfabrics.com"),
		StoreHours:   ptr("Mon - Sat: 10:00 AM - 9:00 PM\nSunday: 11:00 AM - 7:00 PM"),
		Active:       true,
	}
}

// DefaultBankDetails is served until an admin saves bank details
func DefaultBankDetails() models.BankDetails {
	return models.BankDetails{
		BankName:      "Habib Bank Limited",
		AccountNumber: "1234-5678-9012-3456",
		AccountTitle:  "Shahzad Fabrics",
		ContactPhone:  ptr("0323 9348438"),
		Active:        true,
	}
}

// DefaultAboutPage is served until an admin saves the about page
func DefaultAboutPage() models.AboutPage {
	return models.AboutPage{
		PageTitle:     "About Shahzad Fabrics",
		PageSubtitle:  ptr("Since 1995, Shahzad Fabrics has been serving the people of Lahore with premium quality fabrics. Our commitment to excellence and customer satisfaction has made us a trusted name in the textile industry."),
		StoryTitle:    "Our Story",
		StoryContent:  ptr(defaultStoryContent),
		ValuesTitle:   ptr("Our Values"),
		Value1Title:   ptr("Quality First"),
		Value1Content: ptr("We source only the finest fabrics, ensuring every piece meets our high standards of quality and durability."),
		Value2Title:   ptr("Customer Service"),
		Value2Content: ptr("Our experienced staff is dedicated to helping you find exactly what you're looking for, with personalized attention and expert advice."),
		Value3Title:   ptr("Trust & Integrity"),
		Value3Content: ptr("For nearly 30 years, we've built our reputation on honesty, transparency, and building lasting relationships with our customers."),
		Active:        true,
	}
}

// GetStoreInfo returns the most recently saved active store info, or the defaults
func (s *StoreService) GetStoreInfo(ctx context.Context) (*models.StoreInfo, error) {
	info := DefaultStoreInfo()
	if err := s.latestActive(ctx, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *StoreService) SaveStoreInfo(ctx context.Context, in StoreInfoInput) (*models.StoreInfo, error) {
	fields := requireFields(map[string]string{
		"title": in.Title, "location": in.Location, "contact_phone": in.ContactPhone,
	})
	if len(fields) > 0 {
		return nil, ValidationError("VALIDATION_ERROR", "Invalid store info", fields)
	}

	info := models.StoreInfo{
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Image:        in.Image,
		Location:     strings.TrimSpace(in.Location),
		ContactPhone: strings.TrimSpace(in.ContactPhone),
		Email:        in.Email,
		StoreHours:   in.StoreHours,
		FacebookURL:  in.FacebookURL,
		InstagramURL: in.InstagramURL,
		TiktokURL:    in.TiktokURL,
		Active:       true,
	}
	if err := s.saveSingleton(ctx, &models.StoreInfo{}, &info, &info.ID); err != nil {
		return nil, err
	}

	zap.L().Info("Store info saved", zap.Uint("store_info_id", info.ID))
	return &info, nil
}

// GetBankDetails returns the most recently saved active bank details, or the defaults
func (s *StoreService) GetBankDetails(ctx context.Context) (*models.BankDetails, error) {
	details := DefaultBankDetails()
	if err := s.latestActive(ctx, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (s *StoreService) SaveBankDetails(ctx context.Context, in BankDetailsInput) (*models.BankDetails, error) {
	fields := requireFields(map[string]string{
		"bank_name": in.BankName, "account_number": in.AccountNumber, "account_title": in.AccountTitle,
	})
	if len(fields) > 0 {
		return nil, ValidationError("VALIDATION_ERROR", "Invalid bank details", fields)
	}

	details := models.BankDetails{
		BankName:      strings.TrimSpace(in.BankName),
		AccountNumber: strings.TrimSpace(in.AccountNumber),
		AccountTitle:  strings.TrimSpace(in.AccountTitle),
		IBAN:          in.IBAN,
		SwiftCode:     in.SwiftCode,
		BranchName:    in.BranchName,
		BranchAddress: in.BranchAddress,
		ContactPhone:  in.ContactPhone,
		Active:        true,
	}
	if err := s.saveSingleton(ctx, &models.BankDetails{}, &details, &details.ID); err != nil {
		return nil, err
	}

	zap.L().Info("Bank details saved", zap.Uint("bank_details_id", details.ID))
	return &details, nil
}

// GetAboutPage returns the most recently saved active about page, or the defaults
func (s *StoreService) GetAboutPage(ctx context.Context) (*models.AboutPage, error) {
	page := DefaultAboutPage()
	if err := s.latestActive(ctx, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *StoreService) SaveAboutPage(ctx context.Context, in AboutPageInput) (*models.AboutPage, error) {
	fields := requireFields(map[string]string{"page_title": in.PageTitle, "story_title": in.StoryTitle})
	if len(fields) > 0 {
		return nil, ValidationError("VALIDATION_ERROR", "Invalid about page", fields)
	}

	page := models.AboutPage{
		PageTitle:     strings.TrimSpace(in.PageTitle),
		PageSubtitle:  in.PageSubtitle,
		StoryTitle:    strings.TrimSpace(in.StoryTitle),
		StoryContent:  in.StoryContent,
		ValuesTitle:   in.ValuesTitle,
		Value1Title:   in.Value1Title,
		Value1Content: in.Value1Content,
		Value2Title:   in.Value2Title,
		Value2Content: in.Value2Content,
		Value3Title:   in.Value3Title,
		Value3Content: in.Value3Content,
		Active:        true,
	}
	if err := s.saveSingleton(ctx, &models.AboutPage{}, &page, &page.ID); err != nil {
		return nil, err
	}

	zap.L().Info("About page saved", zap.Uint("about_page_id", page.ID))
	return &page, nil
}

// ListOwners returns active owners in display order
func (s *StoreService) ListOwners(ctx context.Context) ([]models.Owner, error) {
	owners := []models.Owner{}
	err := s.db.WithContext(ctx).Where("active = ?", true).
		Order("position ASC").Order("id ASC").
		Find(&owners).Error
	if err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}
	return owners, nil
}

func (s *StoreService) CreateOwner(ctx context.Context, in OwnerInput) (*models.Owner, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ValidationError("VALIDATION_ERROR", "Invalid owner", map[string]string{"name": "is required"})
	}

	owner := models.Owner{
		Name:        strings.TrimSpace(in.Name),
		Image:       in.Image,
		Description: in.Description,
		Active:      true,
	}
	if in.Position != nil {
		owner.Position = *in.Position
	} else {
		var last struct{ Max *int }
		err := s.db.WithContext(ctx).Model(&models.Owner{}).
			Select("MAX(position) AS max").
			Where("active = ?", true).
			Scan(&last).Error
		if err != nil {
			return nil, InternalError("DATABASE_ERROR", err)
		}
		if last.Max != nil {
			owner.Position = *last.Max + 1
		}
	}
	if err := s.db.WithContext(ctx).Create(&owner).Error; err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}

	zap.L().Info("Owner created", zap.Uint("owner_id", owner.ID), zap.Int("position", owner.Position))
	return &owner, nil
}

func (s *StoreService) UpdateOwner(ctx context.Context, id uint, in UpdateOwnerInput) (*models.Owner, error) {
	var owner models.Owner
	if err := findActive(ctx, s.db, &owner, id, "OWNER_NOT_FOUND", "Owner not found"); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Active != nil {
		if *in.Active {
			return nil, ValidationError("INVALID_UPDATE", "Only active=false is supported", map[string]string{"active": "must be false"})
		}
		updates["active"] = false
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, ValidationError("VALIDATION_ERROR", "Invalid owner", map[string]string{"name": "is required"})
		}
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	setOptional(updates, "image", in.Image)
	setOptional(updates, "description", in.Description)
	if in.Position != nil {
		updates["position"] = *in.Position
	}
	if len(updates) == 0 {
		return nil, ValidationError("INVALID_UPDATE", "Nothing to update", nil)
	}

	if err := s.db.WithContext(ctx).Model(&owner).Updates(updates).Error; err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}
	if err := s.db.WithContext(ctx).First(&owner, id).Error; err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}
	return &owner, nil
}

// ListSections returns active sections ordered by type
func (s *StoreService) ListSections(ctx context.Context) ([]models.Section, error) {
	sections := []models.Section{}
	if err := s.db.WithContext(ctx).Where("active = ?", true).Order("type ASC").Find(&sections).Error; err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}
	return sections, nil
}

func (s *StoreService) CreateSection(ctx context.Context, in SectionInput) (*models.Section, error) {
	fields := requireFields(map[string]string{"title": in.Title, "image": in.Image})
	if !models.IsValidProductType(in.Type) {
		fields["type"] = "must be one of: ladies, gents"
	}
	if len(fields) > 0 {
		return nil, ValidationError("VALIDATION_ERROR", "Invalid section", fields)
	}
	if err := s.ensureSectionTypeFree(ctx, in.Type, 0); err != nil {
		return nil, err
	}

	section := models.Section{
		Type:        in.Type,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Image:       strings.TrimSpace(in.Image),
		Items:       datatypes.JSONSlice[string](nonNil(in.Items)),
		Active:      true,
	}
	if err := s.db.WithContext(ctx).Create(&section).Error; err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}

	zap.L().Info("Section created", zap.Uint("section_id", section.ID), zap.String("type", section.Type))
	return &section, nil
}

func (s *StoreService) UpdateSection(ctx context.Context, id uint, in UpdateSectionInput) (*models.Section, error) {
	var section models.Section
	if err := findActive(ctx, s.db, &section, id, "SECTION_NOT_FOUND", "Section not found"); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Active != nil {
		if *in.Active {
			return nil, ValidationError("INVALID_UPDATE", "Only active=false is supported", map[string]string{"active": "must be false"})
		}
		updates["active"] = false
	}
	if in.Type != nil {
		if !models.IsValidProductType(*in.Type) {
			return nil, invalidProductType()
		}
		if err := s.ensureSectionTypeFree(ctx, *in.Type, id); err != nil {
			return nil, err
		}
		updates["type"] = *in.Type
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, ValidationError("VALIDATION_ERROR", "Invalid section", map[string]string{"title": "is required"})
		}
		updates["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Image != nil {
		if strings.TrimSpace(*in.Image) == "" {
			return nil, ValidationError("VALIDATION_ERROR", "Invalid section", map[string]string{"image": "is required"})
		}
		updates["image"] = strings.TrimSpace(*in.Image)
	}
	setOptional(updates, "description", in.Description)
	setList(updates, "items", in.Items)
	if len(updates) == 0 {
		return nil, ValidationError("INVALID_UPDATE", "Nothing to update", nil)
	}

	if err := s.db.WithContext(ctx).Model(&section).Updates(updates).Error; err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}
	if err := s.db.WithContext(ctx).First(&section, id).Error; err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}
	return &section, nil
}

// ensureSectionTypeFree rejects a type already used by another active section
func (s *StoreService) ensureSectionTypeFree(ctx context.Context, sectionType string, exceptID uint) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Section{}).
		Where("type = ? AND active = ? AND id <> ?", sectionType, true, exceptID).
		Count(&count).Error
	if err != nil {
		return InternalError("DATABASE_ERROR", err)
	}
	if count > 0 {
		return ConflictError("SECTION_EXISTS", "A section of this type already exists")
	}
	return nil
}

// latestActive loads the most recently updated active row into dst. dst is
// left untouched when no row exists.
func (s *StoreService) latestActive(ctx context.Context, dst any) error {
	err := s.db.WithContext(ctx).Where("active = ?", true).
		Order("updated_at DESC").Order("id DESC").
		First(dst).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return InternalError("DATABASE_ERROR", err)
	}
	return nil
}

// saveSingleton overwrites the current active row of model with row, or
// creates it. id points at row's primary key.
func (s *StoreService) saveSingleton(ctx context.Context, model, row any, id *uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current struct{ ID uint }
		err := tx.Model(model).Select("id").
			Where("active = ?", true).
			Order("updated_at DESC").Order("id DESC").
			Limit(1).Scan(&current).Error
		if err != nil {
			return InternalError("DATABASE_ERROR", err)
		}

		if current.ID == 0 {
			if err := tx.Create(row).Error; err != nil {
				return InternalError("DATABASE_ERROR", err)
			}
			return nil
		}
		*id = current.ID
		if err := tx.Select("*").Omit("created_at").Updates(row).Error; err != nil {
			return InternalError("DATABASE_ERROR", err)
		}
		if err := tx.First(row, current.ID).Error; err != nil {
			return InternalError("DATABASE_ERROR", err)
		}
		return nil
	})
}

// requireFields reports every blank value, keyed by its field name
func requireFields(values map[string]string) map[string]string {
	fields := map[string]string{}
	for name, value := range values {
		if strings.TrimSpace(value) == "" {
			fields[name] = "is required"
		}
	}
	return fields
}

func ptr(s string) *string { return &s }
