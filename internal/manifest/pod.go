package manifest

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"
)

// SamplePodName is the name of the sample nginx pod.
const SamplePodName = "nginx-pod"

// SamplePodFile is the file name of the sample manifest in the operator's home.
const SamplePodFile = "sample-pod.yml"

// SamplePod returns the sample nginx pod manifest as YAML.
//
// The pod is intentionally left without a security context so that
// "k8s-security-scan manifest" has findings to report.
func SamplePod() ([]byte, error) {
	pod := &corev1.Pod{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Pod",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: SamplePodName,
		},
		Spec: corev1.PodSpec{
			Containers: []corev1.Container{
				{
					Name:  "nginx",
					Image: "nginx",
					Ports: []corev1.ContainerPort{
						{ContainerPort: 80},
					},
				},
			},
		},
	}

	data, err := yaml.Marshal(pod)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sample pod: %w", err)
	}
	return data, nil
}
