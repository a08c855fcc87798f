// internal/handlers/admin.go
package handlers

import (
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/frameit/frameit-backend/internal/middleware"
	"github.com/frameit/frameit-backend/internal/services"
	"github.com/frameit/frameit-backend/internal/utils"
)

// AdminHandler covers the catalog management surface: the complete glasses
// package upload plus product listing, editing and retirement.
type AdminHandler struct {
	productService *services.ProductService
	glassesService *services.GlassesService
	storageService *services.StorageService
}

func NewAdminHandler(productService *services.ProductService, glassesService *services.GlassesService, storageService *services.StorageService) *AdminHandler {
	return &AdminHandler{
		productService: productService,
		glassesService: glassesService,
		storageService: storageService,
	}
}

// POST /api/admin/glasses/add-complete
//
// Multipart upload carrying the product fields plus three file groups:
// modelFiles (.gltf/.glb/.json/.bin), textureFiles and productImages. Files are
// stored first so the GLTF auto-fit step can read the frame model from disk.
func (h *AdminHandler) AddCompleteGlasses(c *gin.Context) {
	req, err := parseGlassesPackageForm(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form", err.Error())
		return
	}

	modelFiles := form.File["modelFiles"]
	if len(modelFiles) == 0 {
		utils.BadRequestResponse(c, "At least one model file is required", nil)
		return
	}

	modelFilenames, err := h.storeModelFiles(req.ModelName, modelFiles)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	textureFilenames, err := h.storeTextureFiles(req.ModelName, form.File["textureFiles"])
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	imagePaths, err := h.storeProductImages(form.File["productImages"])
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	pkg, err := h.glassesService.AddCompletePackage(req, modelFilenames, textureFilenames, imagePaths)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	fields := logrus.Fields{
		"product": pkg.Product.Slug,
		"model":   req.ModelName,
	}
	if admin, ok := middleware.CurrentAdmin(c); ok {
		fields["admin"] = admin.Email
	}
	logrus.WithFields(fields).Info("Glasses package added")

	utils.CreatedResponse(c, pkg)
}

// GET /api/admin/products
func (h *AdminHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.ListAll()
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load products")
		return
	}

	utils.SuccessResponse(c, products)
}

// PATCH /api/admin/products/:id
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.UpdateProduct(id, &req)
	if err != nil {
		utils.NotFoundResponse(c, "Product not found")
		return
	}

	utils.SuccessResponse(c, product)
}

// POST /api/admin/products/:id/images
//
// Multipart upload of additional product images. The replaceImages form
// value ("true") swaps the gallery instead of appending to it.
func (h *AdminHandler) UploadProductImages(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form", err.Error())
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, "At least one image is required", nil)
		return
	}

	paths, err := h.storeProductImages(files)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	replace := c.PostForm("replaceImages") == "true"
	product, err := h.productService.AddImages(id, paths, replace)
	if err != nil {
		utils.NotFoundResponse(c, "Product not found")
		return
	}

	urls := make([]string, len(paths))
	for i, p := range paths {
		urls[i] = h.storageService.PublicURL(p)
	}
	utils.SuccessResponse(c, gin.H{
		"product":   product,
		"imageUrls": urls,
	})
}

// DELETE /api/admin/products/:id
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	if err := h.productService.SoftDelete(id); err != nil {
		utils.NotFoundResponse(c, "Product not found")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Product deactivated"})
}

func (h *AdminHandler) storeModelFiles(modelName string, files []*multipart.FileHeader) ([]string, error) {
	filenames := make([]string, 0, len(files))
	for _, fh := range files {
		name, err := h.storageService.SaveModelFile(modelName, fh)
		if err != nil {
			return nil, err
		}
		filenames = append(filenames, name)
	}
	return filenames, nil
}

func (h *AdminHandler) storeTextureFiles(modelName string, files []*multipart.FileHeader) ([]string, error) {
	filenames := make([]string, 0, len(files))
	for _, fh := range files {
		name, err := h.storageService.SaveTextureFile(modelName, fh)
		if err != nil {
			return nil, err
		}
		filenames = append(filenames, name)
	}
	return filenames, nil
}

func (h *AdminHandler) storeProductImages(files []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, fh := range files {
		rel, err := h.storageService.SaveProductImage(fh)
		if err != nil {
			return nil, err
		}
		paths = append(paths, rel)
	}
	return paths, nil
}

// parseGlassesPackageForm reads the product fields out of the multipart
// form values.
func parseGlassesPackageForm(c *gin.Context) (*services.AddGlassesPackageRequest, error) {
	req := &services.AddGlassesPackageRequest{
		Name:        c.PostForm("name"),
		Brand:       c.PostForm("brand"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Gender:      c.PostForm("gender"),
		FrameColor:  c.PostForm("frameColor"),
		LensColor:   c.PostForm("lensColor"),
		Material:    c.PostForm("material"),
		FrameShape:  c.PostForm("frameShape"),
		ModelName:   c.PostForm("modelName"),
	}

	if raw := c.PostForm("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for price")
		}
		req.Price = price
	}

	if raw := c.PostForm("originalPrice"); raw != "" {
		original, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for originalPrice")
		}
		req.OriginalPrice = &original
	}

	return req, nil
}
