package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/revxlabs/revx/pkg/revx"
)

var publicKeyFlag string

var uploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload images to the asset host",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := make([]revx.File, 0, len(args))
		handles := make([]*os.File, 0, len(args))
		defer func() {
			for _, h := range handles {
				h.Close()
			}
		}()
		for _, path := range args {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			handles = append(handles, f)
			files = append(files, revx.File{Name: path, Content: f})
		}

		uploader := revx.NewUploader(client, publicKeyFlag)
		urls, err := uploader.UploadFiles(cmd.Context(), files, func(done, total int) {
			fmt.Printf("Uploaded %d/%d\n", done, total)
		})
		if err != nil {
			return err
		}
		for _, u := range urls {
			fmt.Println(u)
		}
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringVar(&publicKeyFlag, "public-key", os.Getenv("IMAGEKIT_PUBLIC_KEY"), "asset host public key")
	rootCmd.AddCommand(uploadCmd)
}
