package controllers

import (
	"net/http"
	"strconv"

	"devstep/levels"

	"github.com/gin-gonic/gin"
)

// GetLevels returns the full progression ladder
func GetLevels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"totalLevels": len(levels.Table),
		"levels":      levels.Table,
	})
}

// GetLevel returns a single tier by its level number
func GetLevel(c *gin.Context) {
	levelNumber, err := strconv.Atoi(c.Param("levelNumber"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid level number"})
		return
	}

	tier, err := levels.TierByLevel(levelNumber)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Level not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"level": tier})
}

// GetLevelProgress reports progress through a tier for a given XP value
func GetLevelProgress(c *gin.Context) {
	level, err := strconv.Atoi(c.Param("level"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid level"})
		return
	}
	xp, err := strconv.Atoi(c.Param("xp"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid xp"})
		return
	}

	if _, err := levels.TierByLevel(level); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Level not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"currentLevel":       level,
		"currentXP":          xp,
		"progressPercentage": levels.Progress(level, xp),
		"xpToNextLevel":      levels.XPToNext(level, xp),
	})
}
