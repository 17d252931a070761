package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"wastebank/config"
	"wastebank/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateWasteProduct adds a new waste product. Multipart form: waste,
// unit, price, optional wastephoto.
func CreateWasteProduct(c *gin.Context) {
	product := models.WasteProduct{
		ID: primitive.NewObjectID(),
	}

	product.Waste = c.PostForm("waste")
	product.Unit = c.PostForm("unit")

	if product.Waste == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Waste name is required"})
		return
	}
	if product.Unit == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unit is required"})
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be greater than 0"})
		return
	}
	product.Price = price

	file, err := c.FormFile("wastephoto")
	if err == nil {
		filename, previewFilename, err := SaveWastePhoto(c, file, product.ID.Hex())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		product.PhotoURL = "/uploads/waste-products/" + filename
		product.PhotoPreviewURL = "/uploads/waste-products/" + previewFilename
	}

	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	_, err = config.WasteProductCollection.InsertOne(context.TODO(), product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create waste product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Waste product created successfully", "id": product.ID.Hex(), "photo_url": product.PhotoURL})
}

func EditWasteProduct(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid waste product ID"})
		return
	}

	var existing models.WasteProduct
	err = config.WasteProductCollection.FindOne(context.TODO(), bson.M{"_id": objID}).Decode(&existing)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Waste product not found"})
		return
	}

	updateFields := bson.M{}
	if waste := c.PostForm("waste"); waste != "" {
		updateFields["waste"] = waste
	}
	if unit := c.PostForm("unit"); unit != "" {
		updateFields["unit"] = unit
	}
	if priceStr := c.PostForm("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be greater than 0"})
			return
		}
		updateFields["price"] = price
	}

	file, err := c.FormFile("wastephoto")
	if err == nil {
		removeWastePhoto(existing.PhotoURL)
		removeWastePhoto(existing.PhotoPreviewURL)

		filename, previewFilename, err := SaveWastePhoto(c, file, objID.Hex())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		updateFields["photo_url"] = "/uploads/waste-products/" + filename
		updateFields["photo_preview_url"] = "/uploads/waste-products/" + previewFilename
	}

	if len(updateFields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}
	updateFields["updated_at"] = time.Now()

	_, err = config.WasteProductCollection.UpdateOne(context.TODO(), bson.M{"_id": objID}, bson.M{"$set": updateFields})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update waste product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Waste product updated successfully"})
}

func DeleteWasteProduct(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid waste product ID"})
		return
	}

	var product models.WasteProduct
	err = config.WasteProductCollection.FindOne(context.TODO(), bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Waste product not found"})
		return
	}

	removeWastePhoto(product.PhotoURL)
	removeWastePhoto(product.PhotoPreviewURL)

	_, err = config.WasteProductCollection.DeleteOne(context.TODO(), bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete waste product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Waste product deleted successfully"})
}

func GetWasteProduct(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid waste product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var product models.WasteProduct
	err = config.WasteProductCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Waste product not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving waste product"})
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

func GetAllWasteProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "waste", Value: 1}})
	cursor, err := config.WasteProductCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve waste products"})
		return
	}
	defer cursor.Close(ctx)

	products := []models.WasteProduct{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing waste products"})
		return
	}

	c.JSON(http.StatusOK, products)
}
