package nativebuild

import "os"

func tempObjectPath() (string, error) {
	f, err := os.CreateTemp("", "tml-*.o")
	if err != nil {
		return "", err
	}
	path := f.Name()
	f.Close()
	return path, nil
}

func removeQuiet(path string) { _ = os.Remove(path) }

func readAll(path string) ([]byte, error) { return os.ReadFile(path) }
