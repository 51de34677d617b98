package seeder

import "next-hire/internal/pkg/credential"

const DemoPassword = "password123"

func Defaults(hasher *credential.PasswordHasher) []Seeder {
	return []Seeder{
		UsersSeeder{Hasher: hasher, Password: DemoPassword},
		JobsSeeder{},
	}
}
