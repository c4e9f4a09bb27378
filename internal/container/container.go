package container

import (
	"cloud.google.com/go/storage"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fretops/fretops-api/config"
	"github.com/fretops/fretops-api/pkg/helpers"
)

// app-level container to share constructed components across packages.
// Router modules auto-wire themselves from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	mongoClient *mongo.Client
	mongoDB     *mongo.Database
	redisClient *redis.Client
	gcsClient   *storage.Client

	jwtManager *helpers.JWTManager
	rabbitPub  *helpers.RabbitPublisher
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }

func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }

func SetMongo(c *mongo.Client, db *mongo.Database) { mongoClient = c; mongoDB = db }
func GetMongoClient() *mongo.Client                { return mongoClient }
func GetMongoDB() *mongo.Database                  { return mongoDB }

func SetRedis(r *redis.Client) { redisClient = r }
func GetRedis() *redis.Client  { return redisClient }

func SetGCS(s *storage.Client) { gcsClient = s }
func GetGCS() *storage.Client  { return gcsClient }

func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
