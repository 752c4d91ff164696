package patient

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/smilepoint/clinic-api/models"
)

// Profile returns the patient's own record.
func (ct *Controller) Profile(c *fiber.Ctx) error {
	patient, err := ct.currentPatient(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(patient)
}

// UpdateProfile lets a patient change their own contact details. Name changes
// go through the registration flow so uniqueness stays enforced.
func (ct *Controller) UpdateProfile(c *fiber.Ctx) error {
	patient, err := ct.currentPatient(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	type profileInput struct {
		Phone   string `json:"phone"`
		Gender  string `json:"gender"`
		Address string `json:"address"`
	}
	input := new(profileInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	updates := models.Patient{
		Phone:   input.Phone,
		Gender:  input.Gender,
		Address: input.Address,
	}
	if err := ct.DB.Model(patient).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}
	return c.JSON(patient)
}

// UpdatePicture uploads a new profile picture and stores its URL.
func (ct *Controller) UpdatePicture(c *fiber.Ctx) error {
	patient, err := ct.currentPatient(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing picture file",
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read picture file",
		})
	}
	defer file.Close()

	publicID := fmt.Sprintf("patient-%d", patient.ID)
	url, err := ct.Uploader.Upload(c.Context(), file, publicID, "profile-pictures")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload picture",
		})
	}

	if err := ct.DB.Model(patient).Update("picture_url", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save picture URL",
		})
	}
	return c.JSON(fiber.Map{
		"picture_url": url,
	})
}
